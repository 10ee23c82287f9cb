package client

import "errors"

var errStatus = errors.New("unexpected status")
