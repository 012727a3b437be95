// Package source handles product-data intake from source marketplaces.
// Yahoo Auction is the only supported source; the fetch itself is
// acknowledged and carried out asynchronously by the scraping pipeline.
package source

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	domain "github.com/ktnkk/crosslist/pkg/types"
)

// YahooAuction is the source identifier for Yahoo Auction listings.
const YahooAuction = "yahoo_auction"

// ErrUnsupportedSource is returned for any source other than YahooAuction.
var ErrUnsupportedSource = errors.New("unsupported source marketplace")

// FetchRequest asks for product data to be pulled from a source listing.
type FetchRequest struct {
	Source     string `json:"source"     validate:"required"`
	URL        string `json:"url"        validate:"required,url"`
	CategoryID string `json:"categoryId" validate:"required"`
}

// FetchAck acknowledges an accepted fetch request.
type FetchAck struct {
	URL        string `json:"url"`
	CategoryID string `json:"categoryId"`
	Source     string `json:"source"`
}

// Intake validates and accepts product-data fetch requests.
type Intake struct {
	validate *validator.Validate
}

// NewIntake creates an Intake.
func NewIntake() *Intake {
	return &Intake{validate: validator.New()}
}

// Accept validates the request and returns an acknowledgment. Only
// yahoo_auction requests are accepted.
func (i *Intake) Accept(req *FetchRequest) (*FetchAck, error) {
	if err := i.validate.Struct(req); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil, err
		}
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		return nil, fmt.Errorf("missing or invalid parameters: %s", strings.Join(fields, ", "))
	}

	if req.Source != YahooAuction {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, req.Source)
	}

	return &FetchAck{
		URL:        req.URL,
		CategoryID: req.CategoryID,
		Source:     req.Source,
	}, nil
}

// CheckYahooCredentials verifies that the Yahoo client credential pair
// is either fully configured or fully absent. A half-configured pair is
// always a mistake.
func CheckYahooCredentials(s *domain.Setting) error {
	switch {
	case s.YahooClientID != "" && s.YahooClientSecret == "":
		return errors.New("yahoo_client_secret is not configured")
	case s.YahooClientID == "" && s.YahooClientSecret != "":
		return errors.New("yahoo_client_id is not configured")
	default:
		return nil
	}
}
