package account

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activatedAccount(t *testing.T, balance string, currency string) (Account, uuid.UUID) {
	t.Helper()
	id := uuid.New()
	events, err := Decide(Zero(), CreateAccount{
		ID:             id,
		InitialBalance: decimal.RequireFromString(balance),
		Currency:       currency,
	})
	require.NoError(t, err)
	return Replay(events), id
}

func TestDecideCreate(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	id := uuid.New()
	events, err := Decide(Zero(), CreateAccount{
		ID:             id,
		InitialBalance: decimal.RequireFromString("100"),
		Currency:       "USD",
	})
	require.NoError(err)
	require.Len(events, 2, "creation must emit exactly Created then Activated")

	created, ok := events[0].(AccountCreated)
	require.True(ok)
	assert.Equal(id, created.ID)
	assert.True(created.InitialBalance.Equal(decimal.RequireFromString("100")))
	assert.Equal("USD", created.Currency)
	assert.Equal(StatusCreated, created.Status)

	activated, ok := events[1].(AccountActivated)
	require.True(ok)
	assert.Equal(id, activated.ID)
	assert.Equal(StatusActivated, activated.Status)

	state := Replay(events)
	assert.Equal(id, state.ID)
	assert.True(state.Balance.Equal(decimal.RequireFromString("100")))
	assert.Equal("USD", state.Currency)
	assert.Equal(StatusActivated, state.Status)
	assert.Equal(int64(2), state.Version)
}

func TestDecideCreateNegativeInitialBalance(t *testing.T) {
	assert := assert.New(t)

	events, err := Decide(Zero(), CreateAccount{
		ID:             uuid.New(),
		InitialBalance: decimal.RequireFromString("-5"),
		Currency:       "MAD",
	})
	assert.ErrorIs(err, ErrInitialBalanceNegative)
	assert.Empty(events, "failed creation must produce zero events")
}

func TestDecideCreateAlreadyExists(t *testing.T) {
	assert := assert.New(t)

	state, id := activatedAccount(t, "10", "USD")
	_, err := Decide(state, CreateAccount{
		ID:             id,
		InitialBalance: decimal.Zero,
		Currency:       "USD",
	})
	assert.ErrorIs(err, ErrAccountAlreadyExists)
}

func TestDecideCredit(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	state, id := activatedAccount(t, "100", "USD")
	events, err := Decide(state, CreditAccount{
		ID:       id,
		Amount:   decimal.RequireFromString("50"),
		Currency: "USD",
	})
	require.NoError(err)
	require.Len(events, 1)

	credited, ok := events[0].(AccountCredited)
	require.True(ok)
	assert.True(credited.Amount.Equal(decimal.RequireFromString("50")))

	next := Apply(state, credited)
	assert.True(next.Balance.Equal(decimal.RequireFromString("150")))
	assert.Equal(StatusActivated, next.Status, "credit must not change status")
	assert.Equal("USD", next.Currency, "credit must not change currency")
}

func TestDecideCreditNegativeAmount(t *testing.T) {
	assert := assert.New(t)

	state, id := activatedAccount(t, "100", "USD")
	_, err := Decide(state, CreditAccount{
		ID:       id,
		Amount:   decimal.RequireFromString("-1"),
		Currency: "USD",
	})
	assert.ErrorIs(err, ErrAmountNegative)
}

func TestDecideCreditUnknownAccount(t *testing.T) {
	assert := assert.New(t)

	_, err := Decide(Zero(), CreditAccount{
		ID:       uuid.New(),
		Amount:   decimal.RequireFromString("1"),
		Currency: "USD",
	})
	assert.ErrorIs(err, ErrAccountNotFound)
}

func TestDecideCreditNotActivated(t *testing.T) {
	assert := assert.New(t)

	id := uuid.New()
	// Only the creation event applied, activation still pending.
	state := Apply(Zero(), AccountCreated{
		ID:             id,
		InitialBalance: decimal.RequireFromString("10"),
		Currency:       "USD",
		Status:         StatusCreated,
	})
	_, err := Decide(state, CreditAccount{
		ID:       id,
		Amount:   decimal.RequireFromString("1"),
		Currency: "USD",
	})
	assert.ErrorIs(err, ErrAccountNotActive)
}

func TestDecideDebit(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	state, id := activatedAccount(t, "100", "USD")
	events, err := Decide(state, DebitAccount{
		ID:       id,
		Amount:   decimal.RequireFromString("30"),
		Currency: "USD",
	})
	require.NoError(err)
	require.Len(events, 1)

	next := Apply(state, events[0])
	assert.True(next.Balance.Equal(decimal.RequireFromString("70")))
}

func TestDecideDebitInsufficientBalance(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	state, id := activatedAccount(t, "100", "USD")
	_, err := Decide(state, DebitAccount{
		ID:       id,
		Amount:   decimal.RequireFromString("100.01"),
		Currency: "USD",
	})

	var insufficient *InsufficientBalanceError
	require.ErrorAs(err, &insufficient)
	assert.True(insufficient.Balance.Equal(decimal.RequireFromString("100")),
		"error must carry the balance observed at decision time")
	assert.True(state.Balance.Equal(decimal.RequireFromString("100")), "balance must be unchanged")
}

func TestDecideDebitNegativeAmount(t *testing.T) {
	assert := assert.New(t)

	state, id := activatedAccount(t, "100", "USD")
	_, err := Decide(state, DebitAccount{
		ID:       id,
		Amount:   decimal.RequireFromString("-30"),
		Currency: "USD",
	})
	assert.ErrorIs(err, ErrAmountNegative)

	var insufficient *InsufficientBalanceError
	assert.False(errors.As(err, &insufficient))
}

func TestReplayDeterministic(t *testing.T) {
	assert := assert.New(t)

	id := uuid.New()
	history := []Event{
		AccountCreated{ID: id, InitialBalance: decimal.RequireFromString("100"), Currency: "USD", Status: StatusCreated},
		AccountActivated{ID: id, Status: StatusActivated},
		AccountCredited{ID: id, Amount: decimal.RequireFromString("50"), Currency: "USD"},
		AccountDebited{ID: id, Amount: decimal.RequireFromString("30"), Currency: "USD"},
	}

	first := Replay(history)
	second := Replay(history)

	assert.True(first.Balance.Equal(second.Balance))
	assert.Equal(first.Status, second.Status)
	assert.Equal(first.Version, second.Version)
	assert.True(first.Balance.Equal(decimal.RequireFromString("120")))
	assert.Equal(int64(4), first.Version)
}

func TestReplayEmptyHistory(t *testing.T) {
	assert := assert.New(t)

	state := Replay(nil)
	assert.Equal(StatusUninitialized, state.Status)
	assert.True(state.Balance.IsZero())
	assert.Equal(int64(0), state.Version)
}

func TestApplyRepeatedCreditsKeepPrecision(t *testing.T) {
	assert := assert.New(t)

	state, id := activatedAccount(t, "0", "USD")
	for range 10 {
		state = Apply(state, AccountCredited{ID: id, Amount: decimal.RequireFromString("0.1"), Currency: "USD"})
	}
	assert.True(state.Balance.Equal(decimal.RequireFromString("1")),
		"ten credits of 0.1 must sum to exactly 1")
}
