// internal/services/views.go
package services

import (
	"fmt"

	"github.com/seriesmint/seriesmint-backend/internal/models"
)

// TokenMetadataView is the display metadata surfaced by every read path.
// Fields deliberately omit `omitempty`: optional attributes the series never
// stored are materialized as explicit nulls at read time.
type TokenMetadataView struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Media       *string `json:"media"`
	Copies      *uint64 `json:"copies"`
	IssuedAt    *int64  `json:"issued_at"`
	ExpiresAt   *int64  `json:"expires_at"`
	StartsAt    *int64  `json:"starts_at"`
	Extra       *string `json:"extra"`
	Reference   *string `json:"reference"`
}

type SeriesView struct {
	SeriesID uint64            `json:"series_id"`
	Metadata TokenMetadataView `json:"metadata"`
	Royalty  models.RoyaltyMap `json:"royalty"`
	OwnerID  string            `json:"owner_id"`
	Price    *string           `json:"price"`
}

type SeriesInfoView struct {
	SeriesView
	Supply uint64 `json:"supply"`
}

type TokenView struct {
	TokenID  string            `json:"token_id"`
	OwnerID  string            `json:"owner_id"`
	SeriesID uint64            `json:"series_id"`
	Metadata TokenMetadataView `json:"metadata"`
	Royalty  models.RoyaltyMap `json:"royalty"`
}

func newSeriesMetadataView(series *models.Series) TokenMetadataView {
	return TokenMetadataView{
		Title:       series.Title,
		Description: series.Description,
		Media:       series.Media,
		Copies:      series.Copies,
		IssuedAt:    series.IssuedAt,
		ExpiresAt:   series.ExpiresAt,
		StartsAt:    series.StartsAt,
		Extra:       series.Extra,
		Reference:   series.Reference,
	}
}

func newSeriesView(series *models.Series) SeriesView {
	view := SeriesView{
		SeriesID: series.ID,
		Metadata: newSeriesMetadataView(series),
		Royalty:  series.Royalty,
		OwnerID:  series.OwnerID,
	}

	if series.Price.Valid {
		price := series.Price.Decimal.String()
		view.Price = &price
	}

	return view
}

// newTokenView composites a token's identity with its series template. The
// title is rewritten per edition on every read and never persisted, so a
// later series-title edit is reflected by all of its tokens at once.
func newTokenView(token *models.Token, series *models.Series) TokenView {
	metadata := newSeriesMetadataView(series)
	title := derivedTitle(series, token.Sequence)
	metadata.Title = &title

	return TokenView{
		TokenID:  token.ID,
		OwnerID:  token.OwnerID,
		SeriesID: token.SeriesID,
		Metadata: metadata,
		Royalty:  series.Royalty,
	}
}

func derivedTitle(series *models.Series, sequence uint64) string {
	if series.Title != nil {
		return fmt.Sprintf("%s - %d", *series.Title, sequence)
	}
	return fmt.Sprintf("Series %d : Edition %d", series.ID, sequence)
}
