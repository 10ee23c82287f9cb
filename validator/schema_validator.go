package validator

import (
	"sort"
	"strings"

	"stockplatform/customerrors"
	"stockplatform/model"

	"github.com/Oudwins/zog"
)

var TickerShape = zog.Shape{
	"Ticker": zog.String().Max(16, zog.Message("ticker is too long")).Required(zog.Message("ticker is required")),
}

var PositionShape = zog.Shape{
	"Shares":   zog.Float64().GT(0, zog.Message("shares must be greater than 0")).Required(zog.Message("shares must be greater than 0")),
	"BuyPrice": zog.Float64().GTE(0, zog.Message("buyPrice must not be negative")),
}

var MessageShape = zog.Shape{
	"Message": zog.String().Required(zog.Message("message is required")),
}

var addHoldingSchema = zog.Struct(TickerShape).Extend(PositionShape)

// On update the path ticker wins, so only the position is checked.
var updateHoldingSchema = zog.Struct(PositionShape)

var askSchema = zog.Struct(MessageShape).Extend(TickerShape)

var analyzeSchema = zog.Struct(TickerShape)

func ValidateAddHolding(req *model.HoldingRequest) error {
	return check(addHoldingSchema.Validate(req))
}

func ValidateUpdateHolding(req *model.HoldingRequest) error {
	return check(updateHoldingSchema.Validate(req))
}

func ValidateAsk(req *model.AskRequest) error {
	return check(askSchema.Validate(req))
}

func ValidateAnalyze(req *model.AnalyzeRequest) error {
	return check(analyzeSchema.Validate(req))
}

// check folds zog's issue map into one ErrInvalidRequest whose detail lists
// every failing field in a stable order.
func check(issues zog.ZogIssueMap) error {
	if issues == nil {
		return nil
	}

	keys := make([]string, 0, len(issues))
	for k := range issues {
		if strings.HasPrefix(k, "$") {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	messages := make([]string, 0, len(keys))
	for _, k := range keys {
		for _, issue := range issues[k] {
			messages = append(messages, issue.Message)
			break
		}
	}
	if len(messages) == 0 {
		return customerrors.ErrInvalidRequest
	}
	return customerrors.WithDetail(customerrors.ErrInvalidRequest, "%s", strings.Join(messages, "; "))
}
