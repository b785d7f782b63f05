package rest

import "github.com/shopspring/decimal"

// SymbolType is the market kind of an instrument.
type SymbolType string

const (
	SymbolTypeSpot      SymbolType = "spot"
	SymbolTypePerpetual SymbolType = "perpetual"
	SymbolTypeFuture    SymbolType = "future"
	SymbolTypeOption    SymbolType = "option"
)

// OptionType CALL, PUT
type OptionType string

const (
	OptionTypeCall OptionType = "call"
	OptionTypePut  OptionType = "put"
)

// ExchangeInfo describes one venue's available data.
type ExchangeInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
	// AvailableSince date in ISO format
	AvailableSince    string           `json:"availableSince,omitempty"`
	AvailableChannels []string         `json:"availableChannels,omitempty"`
	AvailableSymbols  []SymbolListing  `json:"availableSymbols,omitempty"`
	Datasets          *DatasetsSummary `json:"datasets,omitempty"`
}

// SymbolListing is one tradable symbol in an exchange listing.
type SymbolListing struct {
	ID             string     `json:"id"`
	Type           SymbolType `json:"type,omitempty"`
	AvailableSince string     `json:"availableSince,omitempty"`
	AvailableTo    string     `json:"availableTo,omitempty"`
}

// DatasetsSummary describes the downloadable dataset coverage of a venue.
type DatasetsSummary struct {
	DataTypes      []string `json:"dataTypes,omitempty"`
	AvailableSince string   `json:"availableSince,omitempty"`
	AvailableTo    string   `json:"availableTo,omitempty"`
}

// InstrumentChanges is a historical change of an instrument's parameters.
// Accurate and complete only for contract multipliers; the rest is best
// effort.
type InstrumentChanges struct {
	// Until date in ISO format
	Until              string           `json:"until"`
	PriceIncrement     *decimal.Decimal `json:"priceIncrement,omitempty"`
	AmountIncrement    *decimal.Decimal `json:"amountIncrement,omitempty"`
	ContractMultiplier *decimal.Decimal `json:"contractMultiplier,omitempty"`
}

// InstrumentInfo is the metadata of a particular instrument.
type InstrumentInfo struct {
	ID       string `json:"id"`
	Exchange string `json:"exchange"`
	// BaseCurrency is normalized, e.g. XBT is reported as BTC
	BaseCurrency  string     `json:"baseCurrency"`
	QuoteCurrency string     `json:"quoteCurrency"`
	Type          SymbolType `json:"type"`
	// Active indicates if the instrument can currently be traded
	Active bool `json:"active"`
	// AvailableSince date in ISO format
	AvailableSince string `json:"availableSince"`
	AvailableTo    string `json:"availableTo,omitempty"`
	// Expiry date in ISO format, futures and options only
	Expiry string `json:"expiry,omitempty"`
	// PriceIncrement price tick size
	PriceIncrement decimal.Decimal `json:"priceIncrement"`
	// AmountIncrement amount tick size
	AmountIncrement decimal.Decimal `json:"amountIncrement"`
	MinTradeAmount  decimal.Decimal `json:"minTradeAmount"`
	// MakerFee is illustrative only; actual fees depend on the account
	MakerFee decimal.Decimal `json:"makerFee"`
	TakerFee decimal.Decimal `json:"takerFee"`
	// Inverse derivatives only
	Inverse            *bool            `json:"inverse,omitempty"`
	ContractMultiplier *decimal.Decimal `json:"contractMultiplier,omitempty"`
	// Quanto instruments settle in a currency different from base/quote
	Quanto             *bool            `json:"quanto,omitempty"`
	SettlementCurrency string           `json:"settlementCurrency,omitempty"`
	// StrikePrice options only
	StrikePrice *decimal.Decimal `json:"strikePrice,omitempty"`
	OptionType  OptionType       `json:"optionType,omitempty"`
	Changes     []InstrumentChanges `json:"changes,omitempty"`
}
