package mobilestore

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// CameraSpecs the camera part of the specs blob
type CameraSpecs struct {
	Main     string `json:"main" mapstructure:"main"`
	Selfie   string `json:"selfie" mapstructure:"selfie"`
	Features string `json:"features" mapstructure:"features"`
}

// PhoneSpecs the semi structured specs mapping, serialized as an opaque
// json blob at persistence time
type PhoneSpecs struct {
	Body     string      `json:"body" mapstructure:"body"`
	Display  string      `json:"display" mapstructure:"display"`
	Platform string      `json:"platform" mapstructure:"platform"`
	Chipset  string      `json:"chipset" mapstructure:"chipset"`
	Memory   string      `json:"memory" mapstructure:"memory"`
	Camera   CameraSpecs `json:"camera" mapstructure:"camera"`
}

// JSON serialize the specs blob
func (s PhoneSpecs) JSON() ([]byte, error) {
	return json.Marshal(s)
}

// PhoneRecord the unit of ingestion
// Model is the unique natural key across the catalog
type PhoneRecord struct {
	Model        string
	Manufacturer string
	Image        string
	Price        decimal.Decimal
	Description  string
	Battery      string
	Features     string
	Specs        PhoneSpecs
	Stock        int
}

// CompanyRecord a phone manufacturer, created lazily on first sight
// Name is the unique natural key
type CompanyRecord struct {
	ID   int64
	Name string
}
