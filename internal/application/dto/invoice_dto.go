package dto

import "github.com/shopspring/decimal"

// InvoiceCellView celda de facturación: costo inicial (allocation × cpi)
// contra costo final (n_delivered × final_cpi). Los costos se calculan al
// leer, nunca se almacenan.
type InvoiceCellView struct {
	AudienceID  string           `json:"audience_id"`
	Ordinal     int              `json:"ordinal"`
	Country     string           `json:"country"`
	Allocation  int              `json:"allocation"`
	CPI         decimal.Decimal  `json:"cpi"`
	NDelivered  *int             `json:"n_delivered"`
	FinalCPI    *decimal.Decimal `json:"final_cpi"`
	InitialCost decimal.Decimal  `json:"initial_cost"`
	FinalCost   decimal.Decimal  `json:"final_cost"`
	Savings     decimal.Decimal  `json:"savings"`
}

// InvoicePartnerView datos de facturación de un (partner, LOI).
type InvoicePartnerView struct {
	PartnerID     string            `json:"partner_id"`
	PartnerName   string            `json:"partner_name"`
	LOI           int               `json:"loi"`
	Currency      string            `json:"currency"`
	InvoiceDate   string            `json:"invoice_date,omitempty"`
	InvoiceSent   bool              `json:"invoice_sent"`
	InvoiceSerial string            `json:"invoice_serial,omitempty"`
	InvoiceNumber string            `json:"invoice_number,omitempty"`
	InvoiceAmount decimal.Decimal   `json:"invoice_amount"`
	Cells         []InvoiceCellView `json:"cells"`
	InitialCost   decimal.Decimal   `json:"initial_cost"`
	FinalCost     decimal.Decimal   `json:"final_cost"`
	Savings       decimal.Decimal   `json:"savings"`
}

// InvoiceDataResponse vista de facturación del bid completo.
type InvoiceDataResponse struct {
	BidID        string               `json:"bid_id"`
	BidNumber    int                  `json:"bid_number"`
	Status       string               `json:"status"`
	Partners     []InvoicePartnerView `json:"partners"`
	TotalInitial decimal.Decimal      `json:"total_initial_cost"`
	TotalFinal   decimal.Decimal      `json:"total_final_cost"`
	TotalSavings decimal.Decimal      `json:"total_savings"`
}

// FinalCPIEntry CPI final de una celda entregada.
type FinalCPIEntry struct {
	PartnerID  string          `json:"partner_id"`
	LOI        int             `json:"loi"`
	AudienceID string          `json:"audience_id"`
	Country    string          `json:"country"`
	FinalCPI   decimal.Decimal `json:"final_cpi"`
}

// InvoiceHeaderEntry cabecera de factura de un (partner, LOI).
type InvoiceHeaderEntry struct {
	PartnerID     string          `json:"partner_id"`
	LOI           int             `json:"loi"`
	InvoiceDate   string          `json:"invoice_date,omitempty"` // YYYY-MM-DD
	InvoiceSent   bool            `json:"invoice_sent"`
	InvoiceSerial string          `json:"invoice_serial,omitempty"`
	InvoiceNumber string          `json:"invoice_number,omitempty"`
	InvoiceAmount decimal.Decimal `json:"invoice_amount"`
}

// SaveInvoiceRequest guarda cabeceras de factura y CPIs finales.
type SaveInvoiceRequest struct {
	Headers   []InvoiceHeaderEntry `json:"headers"`
	FinalCPIs []FinalCPIEntry      `json:"final_cpis"`
}

// SubmitInvoiceResponse resultado del submit: el bid pasa a completed.
type SubmitInvoiceResponse struct {
	BidID     string `json:"bid_id"`
	BidNumber int    `json:"bid_number"`
	Status    string `json:"status"`
}
