package feed

import (
	"testing"
	"time"

	"github.com/go-gotop/normfeed/exchange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplayOptionsValidate(t *testing.T) {
	valid := ReplayOptions{
		Exchange:  exchange.Bybit,
		From:      NewDate(2022, time.October, 1),
		To:        NewDate(2022, time.October, 2),
		DataTypes: []string{"trade"},
	}
	assert.NoError(t, valid.validate())

	sameDay := valid
	sameDay.To = sameDay.From
	assert.NoError(t, sameDay.validate())

	reversed := valid
	reversed.From, reversed.To = reversed.To, reversed.From
	assert.ErrorIs(t, reversed.validate(), ErrInvalidRequest)

	noTypes := valid
	noTypes.DataTypes = nil
	assert.ErrorIs(t, noTypes.validate(), ErrInvalidRequest)

	badExchange := valid
	badExchange.Exchange = "nasdaq"
	assert.ErrorIs(t, badExchange.validate(), ErrInvalidRequest)
}

func TestStreamOptionsValidate(t *testing.T) {
	valid := StreamOptions{Exchange: exchange.Coinbase, DataTypes: []string{"trade"}}
	assert.NoError(t, valid.validate())

	noTypes := valid
	noTypes.DataTypes = nil
	assert.ErrorIs(t, noTypes.validate(), ErrInvalidRequest)

	badExchange := valid
	badExchange.Exchange = ""
	assert.ErrorIs(t, badExchange.validate(), ErrInvalidRequest)
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2022, time.October, 1)
	b, err := Json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2022-10-01"`, string(b))

	var back Date
	require.NoError(t, Json.Unmarshal(b, &back))
	assert.True(t, back.Equal(d.Time))

	assert.Error(t, Json.Unmarshal([]byte(`20221001`), &back))
	assert.Error(t, Json.Unmarshal([]byte(`"01.10.2022"`), &back))
}

func TestReplayOptionsWireForm(t *testing.T) {
	o := ReplayOptions{
		Exchange:  exchange.BinanceFutures,
		From:      NewDate(2022, time.October, 1),
		To:        NewDate(2022, time.October, 2),
		DataTypes: []string{"trade"},
	}
	b, err := Json.Marshal(o)
	require.NoError(t, err)
	s := string(b)
	assert.Contains(t, s, `"exchange":"binance-futures"`)
	assert.Contains(t, s, `"dataTypes":["trade"]`)
	assert.Contains(t, s, `"from":"2022-10-01"`)
	// optional fields stay off the wire when unset
	assert.NotContains(t, s, "symbols")
	assert.NotContains(t, s, "withDisconnectMessages")
}
