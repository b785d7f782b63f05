package exchange

import (
	"errors"
	"strings"
)

// Exchange identifies a venue supported by the normalization server.
// The string value is the exact identifier the server expects.
type Exchange string

const (
	Bitmex               Exchange = "bitmex"
	Deribit              Exchange = "deribit"
	BinanceFutures       Exchange = "binance-futures"
	BinanceDelivery      Exchange = "binance-delivery"
	BinanceOptions       Exchange = "binance-options"
	Binance              Exchange = "binance"
	Ftx                  Exchange = "ftx"
	OkexFutures          Exchange = "okex-futures"
	OkexOptions          Exchange = "okex-options"
	OkexSwap             Exchange = "okex-swap"
	Okex                 Exchange = "okex"
	HuobiDm              Exchange = "huobi-dm"
	HuobiDmSwap          Exchange = "huobi-dm-swap"
	HuobiDmLinearSwap    Exchange = "huobi-dm-linear-swap"
	Huobi                Exchange = "huobi"
	BitfinexDerivatives  Exchange = "bitfinex-derivatives"
	Bitfinex             Exchange = "bitfinex"
	Coinbase             Exchange = "coinbase"
	Cryptofacilities     Exchange = "cryptofacilities"
	Kraken               Exchange = "kraken"
	Bitstamp             Exchange = "bitstamp"
	Gemini               Exchange = "gemini"
	Poloniex             Exchange = "poloniex"
	Bybit                Exchange = "bybit"
	BybitSpot            Exchange = "bybit-spot"
	BybitOptions         Exchange = "bybit-options"
	Phemex               Exchange = "phemex"
	Delta                Exchange = "delta"
	FtxUs                Exchange = "ftx-us"
	BinanceUs            Exchange = "binance-us"
	GateIoFutures        Exchange = "gate-io-futures"
	GateIo               Exchange = "gate-io"
	Okcoin               Exchange = "okcoin"
	Bitflyer             Exchange = "bitflyer"
	Hitbtc               Exchange = "hitbtc"
	Coinflex             Exchange = "coinflex"
	BinanceJersey        Exchange = "binance-jersey"
	BinanceDex           Exchange = "binance-dex"
	Upbit                Exchange = "upbit"
	Ascendex             Exchange = "ascendex"
	Dydx                 Exchange = "dydx"
	Serum                Exchange = "serum"
	Mango                Exchange = "mango"
	HuobiDmOptions       Exchange = "huobi-dm-options"
	StarAtlas            Exchange = "star-atlas"
	CryptoCom            Exchange = "crypto-com"
	CryptoComDerivatives Exchange = "crypto-com-derivatives"
	Kucoin               Exchange = "kucoin"
	Bitnomial            Exchange = "bitnomial"
	WooX                 Exchange = "woo-x"
	BlockchainCom        Exchange = "blockchain-com"
)

var ErrUnknownExchange = errors.New("unknown exchange")

var exchanges = map[Exchange]struct{}{
	Bitmex: {}, Deribit: {}, BinanceFutures: {}, BinanceDelivery: {},
	BinanceOptions: {}, Binance: {}, Ftx: {}, OkexFutures: {},
	OkexOptions: {}, OkexSwap: {}, Okex: {}, HuobiDm: {}, HuobiDmSwap: {},
	HuobiDmLinearSwap: {}, Huobi: {}, BitfinexDerivatives: {}, Bitfinex: {},
	Coinbase: {}, Cryptofacilities: {}, Kraken: {}, Bitstamp: {}, Gemini: {},
	Poloniex: {}, Bybit: {}, BybitSpot: {}, BybitOptions: {}, Phemex: {},
	Delta: {}, FtxUs: {}, BinanceUs: {}, GateIoFutures: {}, GateIo: {},
	Okcoin: {}, Bitflyer: {}, Hitbtc: {}, Coinflex: {}, BinanceJersey: {},
	BinanceDex: {}, Upbit: {}, Ascendex: {}, Dydx: {}, Serum: {}, Mango: {},
	HuobiDmOptions: {}, StarAtlas: {}, CryptoCom: {}, CryptoComDerivatives: {},
	Kucoin: {}, Bitnomial: {}, WooX: {}, BlockchainCom: {},
}

// ParseExchange returns the Exchange for the given server identifier.
func ParseExchange(s string) (Exchange, error) {
	e := Exchange(strings.ToLower(strings.TrimSpace(s)))
	if !e.Valid() {
		return "", ErrUnknownExchange
	}
	return e, nil
}

func (e Exchange) Valid() bool {
	_, ok := exchanges[e]
	return ok
}

func (e Exchange) String() string {
	return string(e)
}

// TradeSide is the liquidity taker side. UNKNOWN when the venue did not
// report the aggressor.
type TradeSide string

const (
	TradeSideBuy     TradeSide = "buy"
	TradeSideSell    TradeSide = "sell"
	TradeSideUnknown TradeSide = "unknown"
)

// DataTypePrefix strips the parameter suffix from a data type identifier,
// e.g. "trade_bar_60m" -> "trade_bar", "book_snapshot_2_50ms" -> "book_snapshot".
// Parameterless data types are returned unchanged.
func DataTypePrefix(dataType string) string {
	for _, p := range []string{"trade_bar", "book_snapshot", "quote_bar"} {
		if strings.HasPrefix(dataType, p) {
			return p
		}
	}
	return dataType
}
