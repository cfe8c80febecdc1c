package harvest

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AssetKind distinguishes securities from the cash position.
type AssetKind string

const (
	Investment AssetKind = "investment"
	CashAsset  AssetKind = "cash"
)

// ParseAssetKind parses a string into an AssetKind.
func ParseAssetKind(s string) (AssetKind, error) {
	switch AssetKind(s) {
	case Investment, CashAsset:
		return AssetKind(s), nil
	default:
		return "", fmt.Errorf("unknown asset kind: %q", s)
	}
}

// Asset identifies a holding class: a security symbol or the cash position.
// It is an immutable value type; two assets are equal iff identifier and kind
// match, which makes Asset usable as a map key.
type Asset struct {
	Identifier string    `json:"identifier"`
	Kind       AssetKind `json:"type"`
}

// NewInvestment returns an investment asset for the given symbol.
func NewInvestment(symbol string) Asset {
	return Asset{Identifier: strings.ToUpper(symbol), Kind: Investment}
}

// NewCash returns a cash asset for the given symbol.
func NewCash(symbol string) Asset {
	return Asset{Identifier: strings.ToUpper(symbol), Kind: CashAsset}
}

func (a Asset) String() string { return a.Identifier }

// IsZero returns true if the asset is the zero value.
func (a Asset) IsZero() bool { return a == Asset{} }

// MarshalJSON implements the json.Marshaler interface for Asset.
func (a Asset) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("identifier", a.Identifier)
	w.Append("type", a.Kind)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Asset.
func (a *Asset) UnmarshalJSON(b []byte) error {
	var temp struct {
		Identifier string `json:"identifier"`
		Kind       string `json:"type"`
	}
	if err := json.Unmarshal(b, &temp); err != nil {
		return err
	}
	kind, err := ParseAssetKind(temp.Kind)
	if err != nil {
		return err
	}
	a.Identifier = temp.Identifier
	a.Kind = kind
	return nil
}
