package dashboard

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/phungle2508/antoree-backend/bus"
	"github.com/phungle2508/antoree-backend/catalog"
	"github.com/phungle2508/antoree-backend/models"
	"github.com/phungle2508/antoree-backend/recommend"
	"github.com/phungle2508/antoree-backend/store"
)

// CartLine is one cart row joined with its catalog record
type CartLine struct {
	Course   models.Course `json:"course"`
	Quantity int           `json:"quantity"`
	Subtotal float64       `json:"subtotal"`
}

// EnrolledCourse joins an enrolled catalog record with its progress
type EnrolledCourse struct {
	Course   models.Course   `json:"course"`
	Progress models.Progress `json:"progress"`
}

// Snapshot is the reconciled dashboard view of one session's store
type Snapshot struct {
	UserData        models.UserData  `json:"userData"`
	Enrolled        []EnrolledCourse `json:"enrolled"`
	Wishlist        []models.Course  `json:"wishlist"`
	Cart            []CartLine       `json:"cart"`
	CartTotal       float64          `json:"cartTotal"`
	Recommendations []models.Course  `json:"recommendations"`
	RefreshedAt     time.Time        `json:"refreshedAt"`
}

// Watcher keeps a session's dashboard snapshot consistent with the store.
// Two independent triggers funnel into the single refresh path: bus
// messages for low-latency updates, and a fixed-interval poll as the
// safety net for missed events. Staleness up to one poll interval is
// expected, not a bug. Close releases the subscription and the ticker.
type Watcher struct {
	store   *store.Store
	catalog *catalog.Catalog
	deriver *recommend.Deriver
	session string

	cancel context.CancelFunc
	done   chan struct{}

	mu            sync.RWMutex
	snapshot      Snapshot
	lastExclusion string
	primed        bool
}

// NewWatcher builds a watcher and starts its event and poll loops.
// interval is the poll period, 500ms reference.
func NewWatcher(s *store.Store, b *bus.Bus, cat *catalog.Catalog, deriver *recommend.Deriver, session string, interval time.Duration) (*Watcher, error) {
	ctx, cancel := context.WithCancel(context.Background())

	messages, err := b.Subscribe(ctx)
	if err != nil {
		cancel()
		return nil, err
	}

	w := &Watcher{
		store:   s,
		catalog: cat,
		deriver: deriver,
		session: session,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	w.refresh()

	go w.run(ctx, messages, interval)
	return w, nil
}

func (w *Watcher) run(ctx context.Context, messages <-chan *bus.Message, interval time.Duration) {
	defer close(w.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			session := msg.Metadata.Get(bus.MetaSession)
			msg.Ack()
			if session == "" || session == w.session {
				w.refresh()
			}
		case <-ticker.C:
			// Poll path: reconcile even if no event arrived, covering
			// missed events and out-of-band cookie changes.
			w.refresh()
		}
	}
}

// refresh is the one "apply latest state" path shared by both triggers
func (w *Watcher) refresh() {
	data := w.store.UserData()
	wishlistIDs := w.store.Wishlist()
	cartItems := w.store.Cart()

	enrolled := make([]EnrolledCourse, 0, len(data.EnrolledCourses))
	for _, id := range data.EnrolledCourses {
		course, ok := w.catalog.ByID(id)
		if !ok {
			continue
		}
		entry := EnrolledCourse{Course: course}
		if p := data.ProgressFor(id); p != nil {
			entry.Progress = *p
		}
		enrolled = append(enrolled, entry)
	}
	// Most recently accessed first, mirroring the continue-learning rail
	sort.SliceStable(enrolled, func(i, j int) bool {
		return enrolled[i].Progress.LastAccessed > enrolled[j].Progress.LastAccessed
	})

	wishlist := make([]models.Course, 0, len(wishlistIDs))
	for _, id := range wishlistIDs {
		if course, ok := w.catalog.ByID(id); ok {
			wishlist = append(wishlist, course)
		}
	}

	cart := make([]CartLine, 0, len(cartItems))
	var cartTotal float64
	for _, item := range cartItems {
		course, ok := w.catalog.ByID(item.ID)
		if !ok {
			continue
		}
		line := CartLine{Course: course, Quantity: item.Quantity}
		if course.Price != nil {
			line.Subtotal = *course.Price * float64(item.Quantity)
		}
		cartTotal += line.Subtotal
		cart = append(cart, line)
	}

	// Recommendations re-derive only when the exclusion set changed, so
	// the poll loop does not hammer the scoring service every tick.
	exclusion := exclusionSignature(data.EnrolledCourses, wishlistIDs, cartItems)

	w.mu.Lock()
	recommendations := w.snapshot.Recommendations
	// The empty exclusion set also signs as "", so the first refresh needs
	// its own trigger.
	refetch := !w.primed || exclusion != w.lastExclusion
	w.mu.Unlock()

	if refetch {
		recommendations = w.deriver.Recommended(w.store, w.session)
	}

	w.mu.Lock()
	w.snapshot = Snapshot{
		UserData:        data,
		Enrolled:        enrolled,
		Wishlist:        wishlist,
		Cart:            cart,
		CartTotal:       cartTotal,
		Recommendations: recommendations,
		RefreshedAt:     time.Now(),
	}
	w.lastExclusion = exclusion
	w.primed = true
	w.mu.Unlock()
}

// Snapshot returns the latest reconciled view
func (w *Watcher) Snapshot() Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.snapshot
}

// Close cancels the bus subscription and stops the poll loop. Every
// watcher must be closed when its owner goes away or subscriptions leak.
func (w *Watcher) Close() {
	w.cancel()
	<-w.done
}

func exclusionSignature(enrolled, wishlist []string, cart []models.CartItem) string {
	ids := make([]string, 0, len(enrolled)+len(wishlist)+len(cart))
	ids = append(ids, enrolled...)
	ids = append(ids, wishlist...)
	for _, item := range cart {
		ids = append(ids, item.ID)
	}
	sort.Strings(ids)
	return strings.Join(ids, ",")
}
