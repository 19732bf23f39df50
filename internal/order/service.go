package order

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/leonyu5566/ordering-helper-backend-sub001/internal/menu"
)

// Summarizer renders the two aligned texts plus the voice script from one
// reconciled order. Must be a pure function of the order and the language.
type Summarizer interface {
	Summarize(o *Order, travelerLang string) *DualSummary
}

// Synthesizer turns the origin-language voice script into audio. Strictly
// best-effort: a failure never blocks returning the text summaries.
type Synthesizer interface {
	Synthesize(ctx context.Context, script string, voiceProfile string) ([]byte, error)
}

// AudioStorage stores the synthesized clip and returns a public URL.
type AudioStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

// Publisher hands the finished order to the messaging channel.
type Publisher interface {
	PublishOrderReady(ctx context.Context, evt ReadyEvent) error
}

// StoreDirectory resolves store context. ResolveOrCreateDefault is the
// explicit escape hatch for sessions started without a store; it is never
// used when a store id was supplied — a supplied-but-unknown id fails
// validation instead of falling back.
type StoreDirectory interface {
	ResolveOrCreateDefault(ctx context.Context) (string, error)
	Exists(ctx context.Context, storeID string) (bool, error)
}

type Service struct {
	menus        menu.Store
	repo         Repository
	stores       StoreDirectory
	summarizer   Summarizer
	synth        Synthesizer
	audio        AudioStorage
	publisher    Publisher
	voiceProfile string
	defaultLang  string
}

func NewService(
	menus menu.Store,
	repo Repository,
	stores StoreDirectory,
	summarizer Summarizer,
	synth Synthesizer,
	audio AudioStorage,
	publisher Publisher,
	voiceProfile string,
	defaultLang string,
) *Service {
	if defaultLang == "" {
		defaultLang = "en"
	}
	return &Service{
		menus:        menus,
		repo:         repo,
		stores:       stores,
		summarizer:   summarizer,
		synth:        synth,
		audio:        audio,
		publisher:    publisher,
		voiceProfile: voiceProfile,
		defaultLang:  defaultLang,
	}
}

type SubmitInput struct {
	SessionID    string
	StoreID      string
	TravelerLang string
	Cart         []CartLine
}

type SubmitResult struct {
	Order   *Order
	Summary *DualSummary
}

// Submit reconciles one cart against its session's ephemeral menu,
// persists the order and summary atomically, then runs the best-effort
// tail (voice synthesis, messaging). Any validation or persistence error
// aborts the whole submission with nothing partially visible.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	if len(in.Cart) == 0 {
		return nil, ErrEmptyCart
	}

	m, err := s.menus.Get(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}

	storeID, err := s.resolveStore(ctx, in.StoreID, m.StoreID)
	if err != nil {
		return nil, err
	}

	o, err := s.reconcile(m, storeID, in.Cart)
	if err != nil {
		return nil, err
	}

	lang := in.TravelerLang
	if lang == "" {
		lang = s.defaultLang
	}
	sum := s.summarizer.Summarize(o, lang)

	if err := s.repo.CreateOrder(ctx, o, sum); err != nil {
		if errors.Is(err, ErrDuplicateSubmission) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}

	// The durable record is now the system of record; the session's
	// ephemeral menu can be reclaimed.
	if err := s.menus.Expire(ctx, in.SessionID); err != nil {
		log.Printf("MENU_EXPIRE_FAILED session=%s: %v", in.SessionID, err)
	}

	s.synthesizeVoice(ctx, o, sum)
	s.notify(ctx, o, sum)

	return &SubmitResult{Order: o, Summary: sum}, nil
}

// reconcile resolves every cart line against the ephemeral menu, preserving
// submission order. Duplicate temp_ids stay separate lines: the traveler's
// explicit repeated selections are not merged.
func (s *Service) reconcile(m *menu.EphemeralMenu, storeID string, cart []CartLine) (*Order, error) {
	lines := make([]OrderLine, 0, len(cart))
	total := 0

	for _, cl := range cart {
		entry, ok := m.Lookup(cl.TempID)
		if !ok {
			return nil, &UnknownMenuItemError{TempID: cl.TempID}
		}

		if cl.Quantity <= 0 {
			return nil, &InvalidQuantityError{TempID: cl.TempID, Quantity: cl.Quantity}
		}

		unit := entry.PriceSmall
		if strings.EqualFold(cl.Size, SizeLarge) {
			unit = entry.PriceLarge
		}

		subtotal := unit * cl.Quantity
		lines = append(lines, OrderLine{
			TempID:    cl.TempID,
			Name:      entry.Name,
			UnitPrice: unit,
			Quantity:  cl.Quantity,
			Subtotal:  subtotal,
		})
		total += subtotal
	}

	return &Order{
		ID:          newOrderID(),
		SessionID:   m.SessionID,
		StoreID:     storeID,
		Lines:       lines,
		TotalAmount: total,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// resolveStore distinguishes "absent" from "invalid": the default-store
// fallback fires only when neither the request nor the session carries a
// store id.
func (s *Service) resolveStore(ctx context.Context, requested, sessionStore string) (string, error) {
	storeID := requested
	if storeID == "" {
		storeID = sessionStore
	}

	if storeID == "" {
		id, err := s.stores.ResolveOrCreateDefault(ctx)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
		}
		return id, nil
	}

	ok, err := s.stores.Exists(ctx, storeID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}
	if !ok {
		return "", ErrUnknownStore
	}
	return storeID, nil
}

func (s *Service) synthesizeVoice(ctx context.Context, o *Order, sum *DualSummary) {
	if s.synth == nil || s.audio == nil {
		return
	}

	clip, err := s.synth.Synthesize(ctx, sum.VoiceScript, s.voiceProfile)
	if err != nil {
		log.Printf("SYNTHESIS_FAILED order=%s: %v", o.ID, err)
		return
	}

	key := fmt.Sprintf("orders/%s.mp3", o.ID)
	url, err := s.audio.Upload(ctx, key, bytes.NewReader(clip), "audio/mpeg")
	if err != nil {
		log.Printf("AUDIO_UPLOAD_FAILED order=%s: %v", o.ID, err)
		return
	}

	sum.AudioURL = url
	if err := s.repo.SetAudioURL(ctx, o.ID, url); err != nil {
		log.Printf("AUDIO_URL_SAVE_FAILED order=%s: %v", o.ID, err)
	}
}

func (s *Service) notify(ctx context.Context, o *Order, sum *DualSummary) {
	if s.publisher == nil {
		return
	}

	evt := ReadyEvent{
		OrderID:      o.ID,
		SessionID:    o.SessionID,
		StoreID:      o.StoreID,
		TotalAmount:  o.TotalAmount,
		OriginText:   sum.OriginText,
		TravelerText: sum.TravelerText,
		TravelerLang: sum.TravelerLang,
		VoiceScript:  sum.VoiceScript,
		AudioURL:     sum.AudioURL,
	}
	if err := s.publisher.PublishOrderReady(ctx, evt); err != nil {
		log.Printf("ORDER_READY_PUBLISH_FAILED order=%s: %v", o.ID, err)
	}
}

// GetOrder reads one stored order with its summary.
func (s *Service) GetOrder(ctx context.Context, orderID string) (*Order, *DualSummary, error) {
	return s.repo.GetOrder(ctx, orderID)
}
