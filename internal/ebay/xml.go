package ebay

import (
	"strconv"
)

// Namespace is the XML namespace of all Trading API documents.
const Namespace = "urn:ebay:apis:eBLBaseComponents"

type requesterCredentials struct {
	EBayAuthToken string `xml:"eBayAuthToken"`
}

type xmlAmount struct {
	Value      string `xml:",chardata"`
	CurrencyID string `xml:"currencyID,attr,omitempty"`
}

func newXMLAmount(m Money) xmlAmount {
	return xmlAmount{
		Value:      strconv.FormatFloat(m.Value, 'f', 2, 64),
		CurrencyID: m.CurrencyID,
	}
}

type xmlPrimaryCategory struct {
	CategoryID string `xml:"CategoryID"`
}

type xmlShippingServiceOption struct {
	ShippingServicePriority int        `xml:"ShippingServicePriority"`
	ShippingService         string     `xml:"ShippingService"`
	ShippingServiceCost     *xmlAmount `xml:"ShippingServiceCost,omitempty"`
}

type xmlShippingDetails struct {
	ShippingType           string                     `xml:"ShippingType,omitempty"`
	ShippingServiceOptions []xmlShippingServiceOption `xml:"ShippingServiceOptions"`
}

type xmlPictureDetails struct {
	PictureURL []string `xml:"PictureURL"`
}

type xmlItem struct {
	Title           string             `xml:"Title"`
	Description     string             `xml:"Description"`
	PrimaryCategory xmlPrimaryCategory `xml:"PrimaryCategory"`
	StartPrice      xmlAmount          `xml:"StartPrice"`
	Currency        string             `xml:"Currency"`
	Quantity        int                `xml:"Quantity"`
	ConditionID     int                `xml:"ConditionID"`
	Country         string             `xml:"Country"`
	Location        string             `xml:"Location"`
	PostalCode      string             `xml:"PostalCode,omitempty"`
	DispatchTimeMax int                `xml:"DispatchTimeMax"`
	ListingDuration string             `xml:"ListingDuration,omitempty"`
	ListingType     string             `xml:"ListingType"`
	PictureDetails  *xmlPictureDetails `xml:"PictureDetails,omitempty"`
	ShippingDetails xmlShippingDetails `xml:"ShippingDetails"`
}

// addFixedPriceItemRequest is the AddFixedPriceItem request document.
type addFixedPriceItemRequest struct {
	XMLName              struct{}             `xml:"AddFixedPriceItemRequest"`
	Xmlns                string               `xml:"xmlns,attr"`
	RequesterCredentials requesterCredentials `xml:"RequesterCredentials"`
	ErrorLanguage        string               `xml:"ErrorLanguage"`
	WarningLevel         string               `xml:"WarningLevel"`
	Item                 xmlItem              `xml:"Item"`
}

func newAddFixedPriceItemRequest(authToken string, r *ListingRequest) *addFixedPriceItemRequest {
	item := xmlItem{
		Title:           r.Title,
		Description:     r.Description,
		PrimaryCategory: xmlPrimaryCategory{CategoryID: r.PrimaryCategoryID},
		StartPrice: xmlAmount{
			Value:      strconv.FormatFloat(r.StartPrice.Value, 'f', 2, 64),
			CurrencyID: r.StartPrice.CurrencyID,
		},
		Currency:        r.Currency,
		Quantity:        r.Quantity,
		ConditionID:     r.ConditionID,
		Country:         r.Country,
		Location:        r.Location,
		PostalCode:      r.PostalCode,
		DispatchTimeMax: r.DispatchTimeMax,
		ListingDuration: r.ListingDuration,
		ListingType:     "FixedPriceItem",
	}

	if item.ListingDuration == "" {
		item.ListingDuration = "GTC"
	}

	if len(r.PictureURLs) > 0 {
		item.PictureDetails = &xmlPictureDetails{PictureURL: r.PictureURLs}
	}

	item.ShippingDetails.ShippingType = r.ShippingDetails.ShippingType
	for i := range r.ShippingDetails.ShippingServiceOptions {
		opt := &r.ShippingDetails.ShippingServiceOptions[i]
		xmlOpt := xmlShippingServiceOption{
			ShippingServicePriority: opt.Priority,
			ShippingService:         opt.ShippingService,
		}
		if opt.ShippingServiceCost != nil {
			a := newXMLAmount(*opt.ShippingServiceCost)
			xmlOpt.ShippingServiceCost = &a
		}
		item.ShippingDetails.ShippingServiceOptions = append(
			item.ShippingDetails.ShippingServiceOptions,
			xmlOpt,
		)
	}

	return &addFixedPriceItemRequest{
		Xmlns:                Namespace,
		RequesterCredentials: requesterCredentials{EBayAuthToken: authToken},
		ErrorLanguage:        "en_US",
		WarningLevel:         "High",
		Item:                 item,
	}
}

// addFixedPriceItemResponse is the subset of the AddFixedPriceItem
// response the service extracts.
type addFixedPriceItemResponse struct {
	Ack    string `xml:"Ack"`
	ItemID string `xml:"ItemID"`
	Fees   struct {
		Fee []Fee `xml:"Fee"`
	} `xml:"Fees"`
}

// getItemRequest is the minimal GetItem request document.
type getItemRequest struct {
	XMLName              struct{}             `xml:"GetItemRequest"`
	Xmlns                string               `xml:"xmlns,attr"`
	RequesterCredentials requesterCredentials `xml:"RequesterCredentials"`
	ItemID               string               `xml:"ItemID"`
	DetailLevel          string               `xml:"DetailLevel"`
}

func newGetItemRequest(authToken, itemID string) *getItemRequest {
	return &getItemRequest{
		Xmlns:                Namespace,
		RequesterCredentials: requesterCredentials{EBayAuthToken: authToken},
		ItemID:               itemID,
		DetailLevel:          "ReturnAll",
	}
}

// getItemResponse is the subset of the GetItem response the service
// extracts. A nil Item means the marketplace returned no item.
type getItemResponse struct {
	Item *struct {
		ItemID        string `xml:"ItemID"`
		Title         string `xml:"Title"`
		Description   string `xml:"Description"`
		SellingStatus struct {
			CurrentPrice  Amount `xml:"CurrentPrice"`
			ListingStatus string `xml:"ListingStatus"`
		} `xml:"SellingStatus"`
		ListingDetails struct {
			ViewItemURL string `xml:"ViewItemURL"`
		} `xml:"ListingDetails"`
	} `xml:"Item"`
}

// errorEnvelope extracts marketplace-reported Errors elements from any
// Trading API response, regardless of the root element name.
type errorEnvelope struct {
	Errors []struct {
		ErrorCode    string `xml:"ErrorCode"`
		ShortMessage string `xml:"ShortMessage"`
		LongMessage  string `xml:"LongMessage"`
		SeverityCode string `xml:"SeverityCode"`
	} `xml:"Errors"`
}

// details converts the envelope into ErrorDetail pairs, skipping
// entries without a long message. Absent codes become "Unknown".
func (e *errorEnvelope) details() []ErrorDetail {
	var out []ErrorDetail
	for _, raw := range e.Errors {
		if raw.LongMessage == "" {
			continue
		}
		code := raw.ErrorCode
		if code == "" {
			code = "Unknown"
		}
		out = append(out, ErrorDetail{Code: code, Message: raw.LongMessage})
	}
	return out
}
