package loader_test

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ikon/internal/core/domain"
	"go.trai.ch/ikon/internal/core/ports"
	"go.trai.ch/ikon/internal/core/ports/mocks"
	"go.trai.ch/ikon/internal/engine/iconset"
	"go.trai.ch/ikon/internal/engine/loader"
	"go.uber.org/mock/gomock"
)

const api = "https://api.example.com"

const homeResponse = `{"prefix":"mdi","icons":{"home":{"body":"<path d=\"M10 20v-6h4v6h5v-8h3L12 3L2 12h3v8z\"/>"}},"width":24,"height":24}`

type fixture struct {
	loader    *loader.Loader
	registry  *iconset.Registry
	transport *mocks.MockTransport
	cache     *mocks.MockSetCache
	logger    *mocks.MockLogger
}

func newFixture(t *testing.T, withCache bool) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	span := mocks.NewMockSpan(ctrl)
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	span.EXPECT().End().AnyTimes()
	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().Start(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, ports.Span) { return ctx, span },
	).AnyTimes()

	metrics := mocks.NewMockMetrics(ctrl)
	metrics.EXPECT().QueryStarted(gomock.Any()).AnyTimes()
	metrics.EXPECT().AttemptSent(gomock.Any()).AnyTimes()
	metrics.EXPECT().QueryFinished(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	metrics.EXPECT().IconsResolved(gomock.Any(), gomock.Any()).AnyTimes()

	f := &fixture{
		registry:  iconset.NewRegistry(false),
		transport: mocks.NewMockTransport(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
	}

	cfg := domain.DefaultProviderConfig()
	cfg.Resources = []string{api}
	opts := loader.Options{
		Providers: map[string]domain.ProviderConfig{"": cfg},
		Transport: f.transport,
		Logger:    f.logger,
		Tracer:    tracer,
		Metrics:   metrics,
	}
	if withCache {
		f.cache = mocks.NewMockSetCache(ctrl)
		opts.Cache = f.cache
	}

	l, err := loader.New(f.registry, opts)
	require.NoError(t, err)
	f.loader = l
	return f
}

// outcome collects the callback of a Load call.
type outcome struct {
	mu      sync.Mutex
	calls   int
	loaded  []string
	missing []string
}

func (o *outcome) callback(loaded, missing, pending []domain.IconName) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls++
	o.loaded = names(loaded)
	o.missing = names(missing)
	if len(pending) > 0 {
		panic("callback fired with pending names")
	}
}

func (o *outcome) get() (calls int, loaded, missing []string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.calls, o.loaded, o.missing
}

func names(in []domain.IconName) []string {
	out := make([]string, len(in))
	for i, n := range in {
		out[i] = n.String()
	}
	return out
}

func ok(body string) *ports.Response {
	return &ports.Response{Status: http.StatusOK, Body: []byte(body)}
}

func TestLoader_DeduplicatesConcurrentRequests(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t, false)
		defer f.loader.Close()

		release := make(chan struct{})
		f.transport.EXPECT().Get(gomock.Any(), api+"/mdi.json?icons=home").DoAndReturn(
			func(context.Context, string) (*ports.Response, error) {
				<-release
				return ok(homeResponse), nil
			},
		).Times(1)

		var first, second outcome
		f.loader.Load([]string{"mdi:home"}, first.callback)
		synctest.Wait()
		f.loader.Load([]string{"mdi-home"}, second.callback)
		synctest.Wait()

		calls, _, _ := first.get()
		assert.Zero(t, calls)

		close(release)
		synctest.Wait()

		for _, o := range []*outcome{&first, &second} {
			calls, loaded, missing := o.get()
			assert.Equal(t, 1, calls)
			assert.Equal(t, []string{"mdi:home"}, loaded)
			assert.Empty(t, missing)
		}
	})
}

func TestLoader_CoalescesNamesIntoOneBatch(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t, false)
		defer f.loader.Close()

		f.transport.EXPECT().Get(gomock.Any(), api+"/mdi.json?icons=home,account").
			Return(ok(homeResponse), nil).Times(1)

		var first, second outcome
		f.loader.Load([]string{"mdi:home"}, first.callback)
		f.loader.Load([]string{"mdi:account", "mdi:home"}, second.callback)
		synctest.Wait()

		_, loaded, missing := first.get()
		assert.Equal(t, []string{"mdi:home"}, loaded)
		assert.Empty(t, missing)

		_, loaded, missing = second.get()
		assert.Equal(t, []string{"mdi:home"}, loaded)
		assert.Equal(t, []string{"mdi:account"}, missing, "names absent from the response are missing")
	})
}

func TestLoader_KnownMissingNeedsNoNetwork(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t, false)
		defer f.loader.Close()

		_, err := f.registry.AddSet("", &domain.IconSetData{
			Prefix:   "foo",
			Icons:    map[string]domain.IconData{},
			NotFound: []string{"bar"},
		})
		require.NoError(t, err)

		var o outcome
		f.loader.Load([]string{"foo:bar"}, o.callback)
		synctest.Wait()

		calls, loaded, missing := o.get()
		assert.Equal(t, 1, calls)
		assert.Empty(t, loaded)
		assert.Equal(t, []string{"foo:bar"}, missing)
	})
}

func TestLoader_FailedQueryMarksMissing(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t, false)
		defer f.loader.Close()

		f.transport.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(&ports.Response{Status: http.StatusNotFound}, nil).Times(1)
		f.logger.EXPECT().Error(gomock.Any()).Times(1)

		var o outcome
		f.loader.Load([]string{"nope:home"}, o.callback)
		synctest.Wait()

		_, loaded, missing := o.get()
		assert.Empty(t, loaded)
		assert.Equal(t, []string{"nope:home"}, missing)
		assert.Equal(t, domain.KnownMissing, f.registry.Lookup(domain.MustParseIconName("nope:home")).State)
	})
}

func TestLoader_UnknownProviderMarksMissing(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t, false)
		defer f.loader.Close()

		f.logger.EXPECT().Warn(gomock.Any()).Times(1)

		var o outcome
		f.loader.Load([]string{"@custom:mdi:home"}, o.callback)
		synctest.Wait()

		_, _, missing := o.get()
		assert.Equal(t, []string{"@custom:mdi:home"}, missing)
	})
}

func TestLoader_CancelSuppressesCallback(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t, false)
		defer f.loader.Close()

		release := make(chan struct{})
		f.transport.EXPECT().Get(gomock.Any(), gomock.Any()).DoAndReturn(
			func(context.Context, string) (*ports.Response, error) {
				<-release
				return ok(homeResponse), nil
			},
		).Times(1)

		var o outcome
		cancel := f.loader.Load([]string{"mdi:home"}, o.callback)
		synctest.Wait()
		cancel()
		cancel()

		close(release)
		synctest.Wait()

		calls, _, _ := o.get()
		assert.Zero(t, calls)
		assert.Equal(t, domain.Found, f.registry.Lookup(domain.MustParseIconName("mdi:home")).State,
			"the fetch itself is not cancelled")
	})
}

func TestLoader_CacheIsConsultedBeforeNetwork(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t, true)
		defer f.loader.Close()

		cached, err := domain.DecodeIconSet([]byte(homeResponse))
		require.NoError(t, err)
		f.cache.EXPECT().Get(gomock.Any(), domain.SetKey{Prefix: "mdi"}).
			Return([]*domain.IconSetData{cached}, nil).Times(1)

		var first, second outcome
		f.loader.Load([]string{"mdi:home"}, first.callback)
		synctest.Wait()
		f.loader.Load([]string{"mdi:home"}, second.callback)
		synctest.Wait()

		for _, o := range []*outcome{&first, &second} {
			_, loaded, _ := o.get()
			assert.Equal(t, []string{"mdi:home"}, loaded)
		}
	})
}

func TestLoader_WritesResponsesToCache(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t, true)

		f.cache.EXPECT().Get(gomock.Any(), domain.SetKey{Prefix: "mdi"}).Return(nil, nil).Times(1)
		f.transport.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ok(homeResponse), nil).Times(1)
		f.cache.EXPECT().Put(gomock.Any(), domain.SetKey{Prefix: "mdi"}, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ domain.SetKey, data *domain.IconSetData) error {
				assert.Contains(t, data.Icons, "home")
				return nil
			},
		).Times(1)

		var o outcome
		f.loader.Load([]string{"mdi:home"}, o.callback)
		synctest.Wait()
		f.loader.Close()

		_, loaded, _ := o.get()
		assert.Equal(t, []string{"mdi:home"}, loaded)
	})
}

func TestLoader_LoadIcons(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t, false)
		defer f.loader.Close()

		f.transport.EXPECT().Get(gomock.Any(), api+"/mdi.json?icons=account,home").
			Return(ok(homeResponse), nil).Times(1)

		res, err := f.loader.LoadIcons(t.Context(), []string{"mdi:home", "Bad Name", "mdi:account", "mdi:home"})
		require.NoError(t, err)
		assert.Equal(t, []string{"mdi:home"}, names(res.Loaded))
		assert.Equal(t, []string{"mdi:account"}, names(res.Missing))
		assert.Equal(t, []string{"Bad Name"}, res.Invalid)
		assert.Empty(t, res.Pending)
	})
}

func TestLoader_LoadIconsHonoursContext(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t, false)
		defer f.loader.Close()

		release := make(chan struct{})
		defer close(release)
		f.transport.EXPECT().Get(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, _ string) (*ports.Response, error) {
				select {
				case <-release:
				case <-ctx.Done():
				}
				return nil, context.Canceled
			},
		).AnyTimes()
		f.logger.EXPECT().Error(gomock.Any()).AnyTimes()

		ctx, cancel := context.WithCancel(t.Context())
		go func() {
			synctest.Wait()
			cancel()
		}()

		res, err := f.loader.LoadIcons(ctx, []string{"mdi:home"})
		require.ErrorContains(t, err, domain.ErrQueryAborted.Error())
		assert.Equal(t, []string{"mdi:home"}, names(res.Pending))
	})
}

func TestLoader_LoadIcon(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t, false)
		defer f.loader.Close()

		f.transport.EXPECT().Get(gomock.Any(), api+"/mdi.json?icons=home").Return(ok(homeResponse), nil).Times(1)
		f.transport.EXPECT().Get(gomock.Any(), api+"/mdi.json?icons=nope").Return(ok(homeResponse), nil).Times(1)

		icon, err := f.loader.LoadIcon(t.Context(), "mdi:home")
		require.NoError(t, err)
		assert.InDelta(t, 24, icon.Width, 0)

		// A second lookup is served from the registry.
		_, err = f.loader.LoadIcon(t.Context(), "mdi:home")
		require.NoError(t, err)

		_, err = f.loader.LoadIcon(t.Context(), "mdi:nope")
		require.ErrorContains(t, err, domain.ErrIconNotFound.Error())

		_, err = f.loader.LoadIcon(t.Context(), "not valid")
		require.ErrorContains(t, err, domain.ErrInvalidIconName.Error())
	})
}

func TestLoader_ClosedLoader(t *testing.T) {
	f := newFixture(t, false)
	f.loader.Close()

	f.logger.EXPECT().Warn(domain.ErrLoaderClosed.Error()).AnyTimes()

	_, err := f.loader.LoadIcons(t.Context(), []string{"mdi:home"})
	require.ErrorContains(t, err, domain.ErrLoaderClosed.Error())
}

func TestLoader_CachedNamesCompleteWithoutWaitingForNetwork(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t, true)
		defer f.loader.Close()

		cached, err := domain.DecodeIconSet([]byte(homeResponse))
		require.NoError(t, err)
		f.cache.EXPECT().Get(gomock.Any(), domain.SetKey{Prefix: "mdi"}).
			Return([]*domain.IconSetData{cached}, nil).Times(1)
		f.cache.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		release := make(chan struct{})
		f.transport.EXPECT().Get(gomock.Any(), api+"/mdi.json?icons=other").DoAndReturn(
			func(context.Context, string) (*ports.Response, error) {
				<-release
				return ok(homeResponse), nil
			},
		).Times(1)

		var cachedOnly, network outcome
		f.loader.Load([]string{"mdi:home"}, cachedOnly.callback)
		f.loader.Load([]string{"mdi:other"}, network.callback)
		synctest.Wait()

		calls, loaded, _ := cachedOnly.get()
		assert.Equal(t, 1, calls, "cached names complete while the network is pending")
		assert.Equal(t, []string{"mdi:home"}, loaded)
		calls, _, _ = network.get()
		assert.Equal(t, 0, calls)

		close(release)
		synctest.Wait()

		calls, _, missing := network.get()
		assert.Equal(t, 1, calls)
		assert.Equal(t, []string{"mdi:other"}, missing)
	})
}

func TestLoader_AddSetCompletesWaitingListeners(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t, false)
		defer f.loader.Close()

		release := make(chan struct{})
		f.transport.EXPECT().Get(gomock.Any(), api+"/mdi.json?icons=home").DoAndReturn(
			func(context.Context, string) (*ports.Response, error) {
				<-release
				return ok(homeResponse), nil
			},
		).Times(1)

		var o outcome
		f.loader.Load([]string{"mdi:home"}, o.callback)
		synctest.Wait()

		local, err := domain.DecodeIconSet([]byte(homeResponse))
		require.NoError(t, err)
		n, err := f.loader.AddSet(local)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		synctest.Wait()

		calls, loaded, _ := o.get()
		assert.Equal(t, 1, calls, "imported data completes the listener before the query answers")
		assert.Equal(t, []string{"mdi:home"}, loaded)

		close(release)
		synctest.Wait()
		calls, _, _ = o.get()
		assert.Equal(t, 1, calls)
	})
}

func TestLoader_AddSetAfterClose(t *testing.T) {
	f := newFixture(t, false)
	f.loader.Close()

	local, err := domain.DecodeIconSet([]byte(homeResponse))
	require.NoError(t, err)
	_, err = f.loader.AddSet(local)
	require.ErrorContains(t, err, domain.ErrLoaderClosed.Error())
}
