// Package models contains the domain types shared across the pipeline.
package models

// Kind is the reconciliation category of a message. Unrecognized message
// types keep their original text as the Kind value so they can be logged
// verbatim; Recognized reports whether a Kind is one of the known values.
type Kind string

const (
	KindSaleAgreement Kind = "sale_agreement"
	KindAuctionResult Kind = "auction_result"
	KindAuction       Kind = "auction"
	KindPublicOffer   Kind = "public_offer"
	KindValuation     Kind = "valuation"
	KindCancellation  Kind = "cancellation"
)

// Recognized reports whether the kind is one of the known categories.
func (k Kind) Recognized() bool {
	switch k {
	case KindSaleAgreement, KindAuctionResult, KindAuction, KindPublicOffer, KindValuation, KindCancellation:
		return true
	}
	return false
}

// IsAnnouncement reports whether the kind is an auction announcement,
// covering both the auction and public-offer subtypes.
func (k Kind) IsAnnouncement() bool {
	return k == KindAuction || k == KindPublicOffer
}

// LotStatus is the lifecycle status assigned to a lot row during
// reconciliation. The source page never carries it.
type LotStatus string

const (
	StatusNew             LotStatus = "new"
	StatusToUpdate        LotStatus = "to_update"
	StatusPendingDeletion LotStatus = "pending_deletion"
)

// Lot is a single asset unit announced within a registry message. The
// normalizer produces Lots as candidates; the store persists them as rows.
// Candidates and rows share the same shape: an archived row is a full copy,
// never a diff.
type Lot struct {
	ID                  int64
	DebtorINN           string
	DebtorText          string
	CaseNumber          string
	MessageNumber       string
	LotNumber           string
	SourceLink          string
	AssetDescription    string
	AssetClassification string
	Price               string
	PublicationDate     string
	AuctionStartDate    string
	AuctionEndDate      string
	PrevMessageNumber   string
	PrevPublicationDate string
	Organizer           string
	TradingPlatform     string
	ContractStatus      string
	ContractDate        string
	ResultStatus        string
	ResultDate          string
	Kind                Kind
	Status              LotStatus
}

// Debtor is a read-only entry from the debtor directory.
type Debtor struct {
	INN        string
	Name       string
	SourceLink string
	CaseNumber string
}
