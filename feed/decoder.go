package feed

import (
	"errors"
	"time"

	"github.com/bitly/go-simplejson"
	"github.com/go-gotop/normfeed/exchange"
)

// decodeMessage converts one raw inbound frame into exactly one normalized
// message. Frames that are not structured data yield *MalformedFrameError;
// recognized types with invalid payloads yield *DecodeError; unknown
// discriminators decode into exchange.Unrecognized so a new server-side
// data type cannot abort an otherwise healthy session.
func decodeMessage(frame []byte) (exchange.NormalizedMessage, error) {
	j, err := simplejson.NewJson(frame)
	if err != nil {
		return nil, &MalformedFrameError{Frame: frame, Err: err}
	}

	typ := j.Get("type").MustString()
	if typ == "" {
		return nil, &DecodeError{Frame: frame, Err: errors.New("missing type discriminator")}
	}

	switch exchange.MessageType(typ) {
	case exchange.MessageTypeTrade:
		m := &exchange.Trade{}
		if err := Json.Unmarshal(frame, m); err != nil {
			return nil, &DecodeError{MessageType: typ, Frame: frame, Err: err}
		}
		if err := checkEnvelope(m.Exchange, m.Symbol, m.LocalTimestamp); err != nil {
			return nil, &DecodeError{MessageType: typ, Frame: frame, Err: err}
		}
		if m.Side == "" {
			m.Side = exchange.TradeSideUnknown
		}
		return m, nil

	case exchange.MessageTypeBookChange:
		m := &exchange.BookChange{}
		if err := Json.Unmarshal(frame, m); err != nil {
			return nil, &DecodeError{MessageType: typ, Frame: frame, Err: err}
		}
		if err := checkEnvelope(m.Exchange, m.Symbol, m.LocalTimestamp); err != nil {
			return nil, &DecodeError{MessageType: typ, Frame: frame, Err: err}
		}
		return m, nil

	case exchange.MessageTypeDerivativeTicker:
		m := &exchange.DerivativeTicker{}
		if err := Json.Unmarshal(frame, m); err != nil {
			return nil, &DecodeError{MessageType: typ, Frame: frame, Err: err}
		}
		if err := checkEnvelope(m.Exchange, m.Symbol, m.LocalTimestamp); err != nil {
			return nil, &DecodeError{MessageType: typ, Frame: frame, Err: err}
		}
		return m, nil

	case exchange.MessageTypeBookSnapshot:
		m := &exchange.BookSnapshot{}
		if err := Json.Unmarshal(frame, m); err != nil {
			return nil, &DecodeError{MessageType: typ, Frame: frame, Err: err}
		}
		if err := checkEnvelope(m.Exchange, m.Symbol, m.LocalTimestamp); err != nil {
			return nil, &DecodeError{MessageType: typ, Frame: frame, Err: err}
		}
		return m, nil

	case exchange.MessageTypeTradeBar:
		m := &exchange.TradeBar{}
		if err := Json.Unmarshal(frame, m); err != nil {
			return nil, &DecodeError{MessageType: typ, Frame: frame, Err: err}
		}
		if err := checkEnvelope(m.Exchange, m.Symbol, m.LocalTimestamp); err != nil {
			return nil, &DecodeError{MessageType: typ, Frame: frame, Err: err}
		}
		return m, nil

	case exchange.MessageTypeDisconnect:
		m := &exchange.Disconnect{}
		if err := Json.Unmarshal(frame, m); err != nil {
			return nil, &DecodeError{MessageType: typ, Frame: frame, Err: err}
		}
		if !m.Exchange.Valid() {
			return nil, &DecodeError{MessageType: typ, Frame: frame, Err: exchange.ErrUnknownExchange}
		}
		return m, nil

	default:
		// Forward compatibility: keep the raw payload and whatever
		// envelope fields are present.
		m := &exchange.Unrecognized{
			TypeName: typ,
			Symbol:   j.Get("symbol").MustString(),
			Raw:      append([]byte(nil), frame...),
		}
		if ex, err := exchange.ParseExchange(j.Get("exchange").MustString()); err == nil {
			m.Exchange = ex
		}
		m.Timestamp = parseEnvelopeTime(j.Get("timestamp").MustString())
		m.LocalTimestamp = parseEnvelopeTime(j.Get("localTimestamp").MustString())
		return m, nil
	}
}

func checkEnvelope(ex exchange.Exchange, symbol string, localTimestamp time.Time) error {
	if !ex.Valid() {
		return exchange.ErrUnknownExchange
	}
	if symbol == "" {
		return errors.New("missing symbol")
	}
	if localTimestamp.IsZero() {
		return errors.New("missing localTimestamp")
	}
	return nil
}

// parseEnvelopeTime parses an ISO-8601 timestamp as UTC. Sub-second
// precision is optional; inputs without it land on whole seconds. Invalid
// or absent values come back zero, best effort only.
func parseEnvelopeTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
