package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonyu5566/ordering-helper-backend-sub001/internal/menu"
	"github.com/leonyu5566/ordering-helper-backend-sub001/internal/store"
)

// --------------------------------------------------
// Fakes
// --------------------------------------------------

type fakeSummarizer struct{}

func (fakeSummarizer) Summarize(o *Order, travelerLang string) *DualSummary {
	origin := make([]string, 0, len(o.Lines))
	traveler := make([]string, 0, len(o.Lines))
	voice := make([]string, 0, len(o.Lines))
	for _, l := range o.Lines {
		origin = append(origin, fmt.Sprintf("%s × %d = %d", l.Name.Origin, l.Quantity, l.Subtotal))
		traveler = append(traveler, fmt.Sprintf("%s × %d = %d", l.Name.Traveler, l.Quantity, l.Subtotal))
		voice = append(voice, fmt.Sprintf("%s %d 份", l.Name.Origin, l.Quantity))
	}
	return &DualSummary{
		OrderID:      o.ID,
		OriginText:   strings.Join(origin, "\n"),
		TravelerText: strings.Join(traveler, "\n"),
		TravelerLang: travelerLang,
		VoiceScript:  strings.Join(voice, "，"),
	}
}

type fakeSynth struct {
	audio []byte
	err   error
	calls int
}

func (f *fakeSynth) Synthesize(_ context.Context, _ string, _ string) ([]byte, error) {
	f.calls++
	return f.audio, f.err
}

type fakeAudioStorage struct{}

func (fakeAudioStorage) Upload(_ context.Context, key string, _ io.Reader, _ string) (string, error) {
	return "https://cdn.test/" + key, nil
}

type fakePublisher struct {
	events []ReadyEvent
	err    error
}

func (f *fakePublisher) PublishOrderReady(_ context.Context, evt ReadyEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, evt)
	return nil
}

// --------------------------------------------------
// Setup
// --------------------------------------------------

type fixture struct {
	service *Service
	menus   *menu.InMemoryStore
	repo    *InMemoryRepository
	stores  *store.InMemoryRepository
	synth   *fakeSynth
	pub     *fakePublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		menus:  menu.NewInMemoryStore(),
		repo:   NewInMemoryRepository(),
		stores: store.NewInMemoryRepository(),
		synth:  &fakeSynth{audio: []byte("mp3")},
		pub:    &fakePublisher{},
	}
	f.service = NewService(
		f.menus,
		f.repo,
		f.stores,
		fakeSummarizer{},
		f.synth,
		fakeAudioStorage{},
		f.pub,
		"zh-TW-standard",
		"en",
	)
	return f
}

func (f *fixture) publishMenu(t *testing.T, sessionID, storeID string) {
	t.Helper()

	m := menu.NewEphemeralMenu(sessionID, storeID, []menu.MenuEntry{
		{
			TempID:     "temp_" + sessionID + "_0",
			Name:       menu.DishName{Origin: "宮保雞丁", Traveler: "Kung Pao Chicken"},
			PriceSmall: 120,
			PriceLarge: 150,
			Category:   menu.DefaultCategory,
			Available:  true,
			Stock:      menu.UnlimitedStock,
		},
		{
			TempID:     "temp_" + sessionID + "_1",
			Name:       menu.DishName{Origin: "可樂", Traveler: "Coke"},
			PriceSmall: 30,
			PriceLarge: 30,
			Category:   menu.DefaultCategory,
			Available:  true,
			Stock:      menu.UnlimitedStock,
		},
	})
	require.NoError(t, f.menus.Save(context.Background(), m))
}

// --------------------------------------------------
// Reconciliation
// --------------------------------------------------

func TestSubmit_ResolvesCartAgainstMenu(t *testing.T) {
	f := newFixture(t)
	f.publishMenu(t, "S1", "")

	result, err := f.service.Submit(context.Background(), SubmitInput{
		SessionID: "S1",
		Cart:      []CartLine{{TempID: "temp_S1_0", Quantity: 2}},
	})
	require.NoError(t, err)

	require.Len(t, result.Order.Lines, 1)
	assert.Equal(t, 240, result.Order.Lines[0].Subtotal)
	assert.Equal(t, 240, result.Order.TotalAmount)
	assert.Equal(t, "宮保雞丁", result.Order.Lines[0].Name.Origin)
}

func TestSubmit_TotalEqualsSumOfSubtotals(t *testing.T) {
	f := newFixture(t)
	f.publishMenu(t, "S1", "")

	result, err := f.service.Submit(context.Background(), SubmitInput{
		SessionID: "S1",
		Cart: []CartLine{
			{TempID: "temp_S1_0", Quantity: 2},
			{TempID: "temp_S1_1", Quantity: 3},
			{TempID: "temp_S1_0", Quantity: 1, Size: SizeLarge},
		},
	})
	require.NoError(t, err)

	sum := 0
	for _, l := range result.Order.Lines {
		assert.Equal(t, l.UnitPrice*l.Quantity, l.Subtotal)
		sum += l.Subtotal
	}
	assert.Equal(t, sum, result.Order.TotalAmount)
	assert.Equal(t, 2*120+3*30+150, result.Order.TotalAmount)
}

func TestSubmit_LargeSizeUsesLargePrice(t *testing.T) {
	f := newFixture(t)
	f.publishMenu(t, "S1", "")

	result, err := f.service.Submit(context.Background(), SubmitInput{
		SessionID: "S1",
		Cart:      []CartLine{{TempID: "temp_S1_0", Quantity: 1, Size: "LARGE"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 150, result.Order.Lines[0].UnitPrice)
}

func TestSubmit_DuplicateTempIDsStaySeparateLines(t *testing.T) {
	f := newFixture(t)
	f.publishMenu(t, "S1", "")

	result, err := f.service.Submit(context.Background(), SubmitInput{
		SessionID: "S1",
		Cart: []CartLine{
			{TempID: "temp_S1_1", Quantity: 1},
			{TempID: "temp_S1_1", Quantity: 2},
		},
	})
	require.NoError(t, err)

	require.Len(t, result.Order.Lines, 2, "repeated selections must not merge")
	assert.Equal(t, 1, result.Order.Lines[0].Quantity)
	assert.Equal(t, 2, result.Order.Lines[1].Quantity)
}

// --------------------------------------------------
// Validation failures
// --------------------------------------------------

func TestSubmit_EmptyCart(t *testing.T) {
	f := newFixture(t)
	f.publishMenu(t, "S1", "")

	_, err := f.service.Submit(context.Background(), SubmitInput{SessionID: "S1"})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestSubmit_UnknownMenuItemAbortsWholeOrder(t *testing.T) {
	f := newFixture(t)
	f.publishMenu(t, "S1", "")

	_, err := f.service.Submit(context.Background(), SubmitInput{
		SessionID: "S1",
		Cart: []CartLine{
			{TempID: "temp_S1_0", Quantity: 1},
			{TempID: "temp_S1_99", Quantity: 1},
		},
	})

	var unknown *UnknownMenuItemError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "temp_S1_99", unknown.TempID)

	// Nothing was persisted: the same session can still submit.
	_, err = f.service.Submit(context.Background(), SubmitInput{
		SessionID: "S1",
		Cart:      []CartLine{{TempID: "temp_S1_0", Quantity: 1}},
	})
	assert.NoError(t, err)
}

func TestSubmit_InvalidQuantity(t *testing.T) {
	f := newFixture(t)
	f.publishMenu(t, "S1", "")

	for _, qty := range []int{0, -1} {
		_, err := f.service.Submit(context.Background(), SubmitInput{
			SessionID: "S1",
			Cart:      []CartLine{{TempID: "temp_S1_0", Quantity: qty}},
		})

		var invalid *InvalidQuantityError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "temp_S1_0", invalid.TempID)
	}
}

func TestSubmit_UnknownItemReportedBeforeQuantity(t *testing.T) {
	f := newFixture(t)
	f.publishMenu(t, "S1", "")

	_, err := f.service.Submit(context.Background(), SubmitInput{
		SessionID: "S1",
		Cart:      []CartLine{{TempID: "temp_S1_99", Quantity: 0}},
	})

	// An id that never existed must not be reported as a quantity problem.
	var unknown *UnknownMenuItemError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "temp_S1_99", unknown.TempID)
}

func TestSubmit_ExpiredSession(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Submit(context.Background(), SubmitInput{
		SessionID: "gone",
		Cart:      []CartLine{{TempID: "temp_gone_0", Quantity: 1}},
	})
	assert.ErrorIs(t, err, menu.ErrSessionNotFound)
}

// --------------------------------------------------
// Store resolution
// --------------------------------------------------

func TestSubmit_MissingStoreFallsBackToDefault(t *testing.T) {
	f := newFixture(t)
	f.publishMenu(t, "S1", "")

	result, err := f.service.Submit(context.Background(), SubmitInput{
		SessionID: "S1",
		Cart:      []CartLine{{TempID: "temp_S1_0", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, store.DefaultStoreID, result.Order.StoreID)
}

func TestSubmit_SuppliedButUnknownStoreFails(t *testing.T) {
	f := newFixture(t)
	f.publishMenu(t, "S1", "")

	_, err := f.service.Submit(context.Background(), SubmitInput{
		SessionID: "S1",
		StoreID:   "no-such-store",
		Cart:      []CartLine{{TempID: "temp_S1_0", Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrUnknownStore, "invalid store must never fall back to default")
}

func TestSubmit_SessionStoreUsedWhenRequestOmitsIt(t *testing.T) {
	f := newFixture(t)
	f.stores.Add(&store.Store{ID: "store_42", Name: "Night Market Stand"})
	f.publishMenu(t, "S1", "store_42")

	result, err := f.service.Submit(context.Background(), SubmitInput{
		SessionID: "S1",
		Cart:      []CartLine{{TempID: "temp_S1_0", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "store_42", result.Order.StoreID)
}

// --------------------------------------------------
// Persistence and the best-effort tail
// --------------------------------------------------

func TestSubmit_DuplicateSubmission(t *testing.T) {
	f := newFixture(t)
	f.publishMenu(t, "S1", "")

	in := SubmitInput{
		SessionID: "S1",
		Cart:      []CartLine{{TempID: "temp_S1_0", Quantity: 1}},
	}

	_, err := f.service.Submit(context.Background(), in)
	require.NoError(t, err)

	// The menu was expired on success; republish to simulate a client
	// retrying through a still-open UI.
	f.publishMenu(t, "S1", "")

	_, err = f.service.Submit(context.Background(), in)
	assert.ErrorIs(t, err, ErrDuplicateSubmission)
}

func TestSubmit_PersistenceFailureIsRetryable(t *testing.T) {
	f := newFixture(t)
	f.publishMenu(t, "S1", "")
	f.repo.FailNextCreate(errors.New("connection refused"))

	_, err := f.service.Submit(context.Background(), SubmitInput{
		SessionID: "S1",
		Cart:      []CartLine{{TempID: "temp_S1_0", Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrPersistenceFailure)

	// Menu must survive a failed persist so the retry can resolve again.
	f.repo.FailNextCreate(nil)
	_, err = f.service.Submit(context.Background(), SubmitInput{
		SessionID: "S1",
		Cart:      []CartLine{{TempID: "temp_S1_0", Quantity: 1}},
	})
	assert.NoError(t, err)
}

func TestSubmit_MenuExpiredAfterSuccess(t *testing.T) {
	f := newFixture(t)
	f.publishMenu(t, "S1", "")

	_, err := f.service.Submit(context.Background(), SubmitInput{
		SessionID: "S1",
		Cart:      []CartLine{{TempID: "temp_S1_0", Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = f.menus.Get(context.Background(), "S1")
	assert.ErrorIs(t, err, menu.ErrSessionNotFound)
}

func TestSubmit_SynthesisFailureStillReturnsSummaries(t *testing.T) {
	f := newFixture(t)
	f.publishMenu(t, "S1", "")
	f.synth.err = errors.New("tts down")

	result, err := f.service.Submit(context.Background(), SubmitInput{
		SessionID: "S1",
		Cart:      []CartLine{{TempID: "temp_S1_0", Quantity: 2}},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.Summary.OriginText)
	assert.NotEmpty(t, result.Summary.TravelerText)
	assert.Empty(t, result.Summary.AudioURL)
}

func TestSubmit_AudioURLStoredOnSuccess(t *testing.T) {
	f := newFixture(t)
	f.publishMenu(t, "S1", "")

	result, err := f.service.Submit(context.Background(), SubmitInput{
		SessionID: "S1",
		Cart:      []CartLine{{TempID: "temp_S1_0", Quantity: 1}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Summary.AudioURL)

	_, stored, err := f.repo.GetOrder(context.Background(), result.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, result.Summary.AudioURL, stored.AudioURL)
}

func TestSubmit_PublishesReadyEvent(t *testing.T) {
	f := newFixture(t)
	f.publishMenu(t, "S1", "")

	result, err := f.service.Submit(context.Background(), SubmitInput{
		SessionID:    "S1",
		TravelerLang: "ja",
		Cart:         []CartLine{{TempID: "temp_S1_0", Quantity: 1}},
	})
	require.NoError(t, err)

	require.Len(t, f.pub.events, 1)
	evt := f.pub.events[0]
	assert.Equal(t, result.Order.ID, evt.OrderID)
	assert.Equal(t, "ja", evt.TravelerLang)
	assert.Equal(t, result.Summary.OriginText, evt.OriginText)
}
