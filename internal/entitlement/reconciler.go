package entitlement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/magabrotheeeer/locadora-backend/internal/lib/sl"
)

// ErrCancelled возвращается магазином, когда пользователь сам
// прервал оплату. Не считается ошибкой платежа.
var ErrCancelled = errors.New("purchase cancelled by user")

// ErrNoPurchases возвращается магазином, когда восстанавливать нечего:
// у аккаунта подтверждённо нет покупок.
var ErrNoPurchases = errors.New("no purchases to restore")

// StoreError классифицированная ошибка магазина подписок.
type StoreError struct {
	Code    PurchaseErrorCode
	Message string
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error [%s]: %s", e.Code, e.Message)
}

// Store определяет методы внешнего магазина покупок и подписок.
type Store interface {
	// Products возвращает каталог доступных планов.
	Products(ctx context.Context) ([]Product, error)
	// Purchase инициирует покупку плана и возвращает подтверждённый снимок.
	Purchase(ctx context.Context, planID string) (*SubscriptionInfo, error)
	// Restore запрашивает ранее сделанные покупки текущего аккаунта.
	Restore(ctx context.Context) (*SubscriptionInfo, error)
	// Entitlement возвращает авторитетное состояние подписки.
	Entitlement(ctx context.Context) (*SubscriptionInfo, error)
}

// Cache описывает методы для кэширования снимка подписки.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
}

const snapshotKey = "entitlement:snapshot"

type flight struct {
	done    chan struct{}
	outcome PurchaseOutcome
}

// Reconciler хранит текущий снимок подписки и сверяет его с магазином.
// Снимок заменяется только целиком; подписчики всегда видят
// согласованное состояние.
type Reconciler struct {
	store Store
	cache Cache
	log   *slog.Logger

	mu       sync.RWMutex
	current  SubscriptionInfo
	subs     map[int]chan SubscriptionInfo
	nextSub  int
	products []Product

	flightMu sync.Mutex
	flights  map[string]*flight
}

// NewReconciler создаёт Reconciler. Снимок по умолчанию неактивен;
// если в кеше лежит снимок с прошлого запуска, он подхватывается.
// cache может быть nil, тогда снимок живёт только в памяти.
func NewReconciler(store Store, cache Cache, log *slog.Logger) *Reconciler {
	r := &Reconciler{
		store:   store,
		cache:   cache,
		log:     log,
		subs:    make(map[int]chan SubscriptionInfo),
		flights: make(map[string]*flight),
	}
	if cache != nil {
		var cached SubscriptionInfo
		found, err := cache.Get(snapshotKey, &cached)
		if err != nil {
			log.Warn("failed to read entitlement snapshot from cache", sl.Err(err))
		} else if found {
			r.current = cached
		}
	}
	return r
}

// IsPremium отвечает по последнему известному снимку, без сети.
// Активная подписка или пробный период дают премиум-доступ.
// Актуальность снимка обеспечивает Sync.
func (r *Reconciler) IsPremium() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current.IsActive || r.current.IsInTrial
}

// Info возвращает последний локальный снимок подписки.
func (r *Reconciler) Info() SubscriptionInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Subscribe регистрирует подписчика на обновления снимка.
// Канал сразу получает текущее значение, далее только последнее
// состояние на момент доставки. Возвращённая функция снимает подписку.
func (r *Reconciler) Subscribe() (<-chan SubscriptionInfo, func()) {
	ch := make(chan SubscriptionInfo, 1)

	r.mu.Lock()
	id := r.nextSub
	r.nextSub++
	r.subs[id] = ch
	ch <- r.current
	r.mu.Unlock()

	cancel := func() {
		r.mu.Lock()
		if _, ok := r.subs[id]; ok {
			delete(r.subs, id)
			close(ch)
		}
		r.mu.Unlock()
	}
	return ch, cancel
}

// Products возвращает каталог планов, кешируя его на время сессии.
func (r *Reconciler) Products(ctx context.Context) ([]Product, error) {
	const op = "entitlement.Products"

	r.mu.RLock()
	cached := r.products
	r.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	products, err := r.store.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	r.mu.Lock()
	r.products = products
	r.mu.Unlock()
	return products, nil
}

// Purchase инициирует покупку плана. На один план одновременно
// допускается один поток покупки: повторный вызов не открывает вторую
// транзакцию в магазине, а дожидается исхода уже запущенной.
// При успехе снимок заменяется до возврата результата, при отмене
// и ошибке остаётся нетронутым.
func (r *Reconciler) Purchase(ctx context.Context, planID string) PurchaseOutcome {
	r.flightMu.Lock()
	if f, ok := r.flights[planID]; ok {
		r.flightMu.Unlock()
		select {
		case <-f.done:
			return f.outcome
		case <-ctx.Done():
			return PurchaseOutcome{Status: OutcomeCancelled, Message: "purchase abandoned"}
		}
	}
	f := &flight{done: make(chan struct{})}
	r.flights[planID] = f
	r.flightMu.Unlock()

	outcome := r.runPurchase(ctx, planID)

	f.outcome = outcome
	close(f.done)

	r.flightMu.Lock()
	delete(r.flights, planID)
	r.flightMu.Unlock()

	return outcome
}

func (r *Reconciler) runPurchase(ctx context.Context, planID string) PurchaseOutcome {
	info, err := r.store.Purchase(ctx, planID)
	if err != nil {
		if errors.Is(err, ErrCancelled) || errors.Is(err, context.Canceled) {
			r.log.Info("purchase cancelled", slog.String("plan", planID))
			return PurchaseOutcome{Status: OutcomeCancelled, Message: err.Error()}
		}
		code := Classify(err)
		r.log.Error("purchase failed",
			slog.String("plan", planID),
			slog.String("code", string(code)),
			sl.Err(err))
		return PurchaseOutcome{Status: OutcomeError, ErrorCode: code, Message: err.Error()}
	}

	r.replace(*info)
	r.log.Info("purchase confirmed",
		slog.String("plan", planID),
		slog.String("product", info.ProductID))
	return PurchaseOutcome{Status: OutcomeSuccess, Info: info}
}

// Restore запрашивает прошлые покупки аккаунта. Подтверждённое
// отсутствие покупок это отдельный исход, не ошибка.
func (r *Reconciler) Restore(ctx context.Context) RestoreOutcome {
	info, err := r.store.Restore(ctx)
	if err != nil {
		if errors.Is(err, ErrNoPurchases) {
			return RestoreOutcome{Status: OutcomeNoPurchases}
		}
		r.log.Error("restore failed", sl.Err(err))
		return RestoreOutcome{Status: OutcomeError, Message: err.Error()}
	}

	r.replace(*info)
	r.log.Info("purchases restored", slog.String("product", info.ProductID))
	return RestoreOutcome{Status: OutcomeSuccess, Info: info}
}

// Sync запрашивает авторитетное состояние подписки и атомарно заменяет
// локальный снимок. Безопасен при повторных и параллельных вызовах.
// Сетевая ошибка не трогает известное состояние: деградация до
// "неактивно" из-за недоступности магазина недопустима.
func (r *Reconciler) Sync(ctx context.Context) error {
	const op = "entitlement.Sync"

	info, err := r.store.Entitlement(ctx)
	if err != nil {
		r.log.Warn("entitlement sync failed, keeping cached snapshot", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	r.replace(*info)
	return nil
}

// ApplyRemote применяет снимок, присланный магазином по push-каналу.
func (r *Reconciler) ApplyRemote(info SubscriptionInfo) {
	r.replace(info)
	r.log.Info("applied pushed entitlement update",
		slog.Bool("is_active", info.IsActive),
		slog.String("product", info.ProductID))
}

func (r *Reconciler) replace(info SubscriptionInfo) {
	r.mu.Lock()
	r.current = info
	for _, ch := range r.subs {
		// подписчик получает только последнее значение
		select {
		case <-ch:
		default:
		}
		ch <- info
	}
	r.mu.Unlock()

	if r.cache != nil {
		if err := r.cache.Set(snapshotKey, info, 0); err != nil {
			r.log.Warn("failed to cache entitlement snapshot", sl.Err(err))
		}
	}
}
