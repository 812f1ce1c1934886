package models

// RawMessage is one extracted registry message as a flat field map. The
// upstream extractor translates the page's native labels into the canonical
// field names below before this pipeline sees the message.
type RawMessage map[string]string

// Canonical field names used by the extractor output.
const (
	FieldMessageType         = "message_type"
	FieldDebtorINN           = "debtor_tax_id"
	FieldDebtorName          = "debtor_name"
	FieldCaseNumber          = "case_number"
	FieldMessageNumber       = "message_number"
	FieldLotNumber           = "lot_number"
	FieldSourceLink          = "source_link"
	FieldAssetDescription    = "asset_description"
	FieldAssetClassification = "asset_classification"
	FieldPrice               = "price"
	FieldPublicationDate     = "publication_date"
	FieldAuctionStartDate    = "auction_start_date"
	FieldAuctionEndDate      = "auction_end_date"
	FieldPriorMessageRef     = "prior_message_reference"
	FieldTradingPlatform     = "trading_platform"
	FieldOrganizer           = "organizer"
	FieldContractStatus      = "contract_status"
	FieldResultStatus        = "result_status"
	FieldWinner              = "winner"
	FieldBestPrice           = "best_price"
)

// Clone returns a shallow copy of the message.
func (m RawMessage) Clone() RawMessage {
	out := make(RawMessage, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
