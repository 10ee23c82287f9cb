package service

import (
	"context"
	"errors"

	"stockplatform/customerrors"
	"stockplatform/model"
	"stockplatform/util"
)

const newsCount = 10

type NewsService interface {
	News(ctx context.Context, symbol string) Result[[]model.NewsItem]
}

type NewsServiceImpl struct {
	source NewsSource
}

func NewNewsService(source NewsSource) NewsService {
	return &NewsServiceImpl{source: source}
}

func (s *NewsServiceImpl) News(ctx context.Context, symbol string) Result[[]model.NewsItem] {
	symbol = util.NormalizeTicker(symbol)
	items := []model.NewsItem{}

	news, err := s.source.GetNews(ctx, symbol, newsCount)
	if errors.Is(err, customerrors.ErrSymbolNotFound) {
		return emptyResult(items)
	}
	if err != nil {
		return failedResult(items, err, "news", symbol)
	}

	for _, n := range news {
		items = append(items, model.NewsItem{
			Title:       n.Title,
			Publisher:   n.Publisher,
			Link:        n.Link,
			PublishedAt: util.EpochRFC3339(n.ProviderPublishTime),
			Thumbnail:   thumbnailURL(n),
		})
	}
	if len(items) == 0 {
		return emptyResult(items)
	}
	return okResult(items)
}

// thumbnailURL picks the last listed resolution, which Yahoo orders
// original first and smallest last.
func thumbnailURL(n model.YahooNews) string {
	if n.Thumbnail == nil || len(n.Thumbnail.Resolutions) == 0 {
		return ""
	}
	return n.Thumbnail.Resolutions[len(n.Thumbnail.Resolutions)-1].URL
}
