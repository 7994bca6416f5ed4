package middleware

import (
    "errors"
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/go-redis/redismock/v9"
    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/fyyur-trivia/internal/config"
    "github.com/iliyamo/fyyur-trivia/internal/utils"
)

func cacheCfg() config.CacheConfig {
    return config.CacheConfig{
        Enabled:      true,
        Methods:      map[string]bool{http.MethodGet: true},
        TTL:          time.Minute,
        KeyStrategy:  "path_query",
        Prefix:       "cache:test",
        MaxBodyBytes: 1 << 20,
    }
}

func TestPayloadRoundTrip(t *testing.T) {
    hdr := http.Header{"Content-Type": {"application/json"}}
    bs, err := encodePayload(http.StatusOK, hdr, []byte(`{"a":1}`))
    require.NoError(t, err)

    status, gotHdr, body, ok := decodePayload(bs)
    require.True(t, ok)
    assert.Equal(t, http.StatusOK, status)
    assert.Equal(t, hdr, gotHdr)
    assert.Equal(t, `{"a":1}`, string(body))

    _, _, _, ok = decodePayload([]byte{1, 2})
    assert.False(t, ok)
}

func TestCacheKeyIncludesQuery(t *testing.T) {
    e := echo.New()
    c1 := e.NewContext(httptest.NewRequest(http.MethodGet, "/questions?page=1", nil), httptest.NewRecorder())
    c1.SetPath("/questions")
    c2 := e.NewContext(httptest.NewRequest(http.MethodGet, "/questions?page=2", nil), httptest.NewRecorder())
    c2.SetPath("/questions")

    k1, k2 := cacheKeyFrom(cacheCfg(), c1), cacheKeyFrom(cacheCfg(), c2)
    assert.NotEqual(t, k1, k2)
    assert.Contains(t, k1, "cache:test:")
}

func TestCacheKeySeparatesPathParams(t *testing.T) {
    e := echo.New()
    key := func(target string) string {
        c := e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), httptest.NewRecorder())
        c.SetPath("/venues/:id")
        return cacheKeyFrom(cacheCfg(), c)
    }
    assert.NotEqual(t, key("/venues/1"), key("/venues/2"))
    assert.Equal(t, key("/venues/1"), key("/venues/1"))

    pathOnly := cacheCfg()
    pathOnly.KeyStrategy = "path"
    c1 := e.NewContext(httptest.NewRequest(http.MethodGet, "/questions?page=1", nil), httptest.NewRecorder())
    c2 := e.NewContext(httptest.NewRequest(http.MethodGet, "/questions?page=2", nil), httptest.NewRecorder())
    assert.Equal(t, cacheKeyFrom(pathOnly, c1), cacheKeyFrom(pathOnly, c2))
}

func TestCacheHitKeepsCORSHeadersSingle(t *testing.T) {
    db, mock := redismock.NewClientMock()
    e := echo.New()

    req := httptest.NewRequest(http.MethodGet, "/categories", nil)
    req.Header.Set(echo.HeaderOrigin, "http://localhost:3000")
    key := cacheKeyFrom(cacheCfg(), e.NewContext(req, httptest.NewRecorder()))

    stored := http.Header{
        echo.HeaderContentType:              {echo.MIMEApplicationJSON},
        echo.HeaderAccessControlAllowOrigin: {"*"},
        echo.HeaderVary:                     {echo.HeaderOrigin},
    }
    payload, err := encodePayload(http.StatusOK, stored, []byte(`{"cached":true}`))
    require.NoError(t, err)
    mock.ExpectGet(key).SetVal(string(payload))

    e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: []string{"*"}}))
    e.Use(NewRedisCache(cacheCfg(), db))
    e.GET("/categories", func(c echo.Context) error { return c.JSON(http.StatusOK, echo.Map{"cached": false}) })

    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)

    assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
    assert.Equal(t, []string{"*"}, rec.Header().Values(echo.HeaderAccessControlAllowOrigin))
    assert.Equal(t, []string{echo.HeaderOrigin}, rec.Header().Values(echo.HeaderVary))
    assert.Equal(t, []string{echo.MIMEApplicationJSON}, rec.Header().Values(echo.HeaderContentType))
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheKeptAfterReadOnlyPost(t *testing.T) {
    db, mock := redismock.NewClientMock()
    mock.ExpectScan(0, "cache:test:*", 100).SetVal([]string{"cache:test:a"}, 0)

    e := echo.New()
    e.Use(NewRedisCache(cacheCfg(), db))
    e.POST("/quizzes", func(c echo.Context) error {
        MarkReadOnly(c)
        return c.JSON(http.StatusOK, echo.Map{"success": true})
    })

    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/quizzes", nil))

    assert.Equal(t, http.StatusOK, rec.Code)
    // The purge scan must never have run.
    assert.Error(t, mock.ExpectationsWereMet())
}

func TestCacheHitServesStoredResponse(t *testing.T) {
    db, mock := redismock.NewClientMock()
    e := echo.New()

    req := httptest.NewRequest(http.MethodGet, "/categories", nil)
    keyCtx := e.NewContext(req, httptest.NewRecorder())
    keyCtx.SetPath("/categories")
    key := cacheKeyFrom(cacheCfg(), keyCtx)

    payload, err := encodePayload(http.StatusOK, http.Header{"Content-Type": {"application/json"}}, []byte(`{"cached":true}`))
    require.NoError(t, err)
    mock.ExpectGet(key).SetVal(string(payload))

    called := false
    e.Use(NewRedisCache(cacheCfg(), db))
    e.GET("/categories", func(c echo.Context) error {
        called = true
        return c.JSON(http.StatusOK, echo.Map{"cached": false})
    })

    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)

    assert.False(t, called)
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
    assert.Equal(t, `{"cached":true}`, rec.Body.String())
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheMissCallsHandler(t *testing.T) {
    db, mock := redismock.NewClientMock()
    e := echo.New()

    req := httptest.NewRequest(http.MethodGet, "/categories", nil)
    keyCtx := e.NewContext(req, httptest.NewRecorder())
    keyCtx.SetPath("/categories")
    mock.ExpectGet(cacheKeyFrom(cacheCfg(), keyCtx)).RedisNil()

    e.Use(NewRedisCache(cacheCfg(), db))
    e.GET("/categories", func(c echo.Context) error { return c.String(http.StatusOK, "fresh") })

    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)

    assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
    assert.Equal(t, "fresh", rec.Body.String())
}

func TestCachePurgedAfterSuccessfulWrite(t *testing.T) {
    db, mock := redismock.NewClientMock()
    mock.ExpectScan(0, "cache:test:*", 100).SetVal([]string{"cache:test:a", "cache:test:b"}, 0)
    mock.ExpectDel("cache:test:a", "cache:test:b").SetVal(2)

    e := echo.New()
    e.Use(NewRedisCache(cacheCfg(), db))
    e.DELETE("/questions/:id", func(c echo.Context) error { return c.JSON(http.StatusOK, echo.Map{"success": true}) })

    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/questions/1", nil))

    assert.Equal(t, http.StatusOK, rec.Code)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheKeptAfterFailedWrite(t *testing.T) {
    db, mock := redismock.NewClientMock()

    e := echo.New()
    e.Use(NewRedisCache(cacheCfg(), db))
    e.DELETE("/questions/:id", func(c echo.Context) error { return echo.NewHTTPError(http.StatusUnprocessableEntity) })

    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/questions/1", nil))

    assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheDisabledWithoutRedis(t *testing.T) {
    e := echo.New()
    e.Use(NewRedisCache(cacheCfg(), nil))
    e.GET("/", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
    assert.Equal(t, "ok", rec.Body.String())
    assert.Empty(t, rec.Header().Get("X-Cache"))
}

func rateCfg() config.RateLimitConfig {
    return config.RateLimitConfig{
        Enabled:  true,
        Capacity: 2,
        Refill:   time.Second,
        TTL:      10 * time.Minute,
        Prefix:   "rl:test",
    }
}

func TestTokenBucket(t *testing.T) {
    fixed := time.UnixMilli(1_700_000_000_000)
    now = func() time.Time { return fixed }
    t.Cleanup(func() { now = time.Now })

    cfg := rateCfg()
    key := "rl:test:ip:192.0.2.1"
    args := []interface{}{fixed.UnixMilli(), cfg.Capacity, cfg.Refill.Milliseconds(), int64(cfg.TTL / time.Second)}

    db, mock := redismock.NewClientMock()
    mock.ExpectEvalSha(tokenBucketScript.Hash(), []string{key}, args...).SetVal([]interface{}{int64(1), int64(1), int64(0)})
    mock.ExpectEvalSha(tokenBucketScript.Hash(), []string{key}, args...).SetVal([]interface{}{int64(0), int64(0), int64(800)})
    mock.ExpectEvalSha(tokenBucketScript.Hash(), []string{key}, args...).SetErr(errors.New("redis down"))

    e := echo.New()
    e.Use(NewTokenBucket(cfg, db))
    e.GET("/", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

    serve := func() *httptest.ResponseRecorder {
        req := httptest.NewRequest(http.MethodGet, "/", nil)
        req.RemoteAddr = "192.0.2.1:4000"
        rec := httptest.NewRecorder()
        e.ServeHTTP(rec, req)
        return rec
    }

    rec := serve()
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Remaining"))

    rec = serve()
    assert.Equal(t, http.StatusTooManyRequests, rec.Code)
    assert.Equal(t, "1", rec.Header().Get("Retry-After"))

    // Redis failures fail open.
    rec = serve()
    assert.Equal(t, http.StatusOK, rec.Code)

    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateKeyPerRoute(t *testing.T) {
    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, "/venues/search", nil)
    req.RemoteAddr = "192.0.2.7:5000"
    c := e.NewContext(req, httptest.NewRecorder())
    c.SetPath("/venues/search")

    cfg := rateCfg()
    assert.Equal(t, "rl:test:ip:192.0.2.7", rateKey(cfg, c))
    cfg.PerRoute = true
    assert.Equal(t, "rl:test:ip:192.0.2.7:route:POST /venues/search", rateKey(cfg, c))
}

func TestAdminOnly(t *testing.T) {
    const secret = "test-secret"
    e := echo.New()
    e.DELETE("/x", func(c echo.Context) error {
        return c.String(http.StatusOK, c.Get(ContextSubject).(string))
    }, AdminOnly(true, secret))

    call := func(token string) *httptest.ResponseRecorder {
        req := httptest.NewRequest(http.MethodDelete, "/x", nil)
        if token != "" {
            req.Header.Set("Authorization", "Bearer "+token)
        }
        rec := httptest.NewRecorder()
        e.ServeHTTP(rec, req)
        return rec
    }

    assert.Equal(t, http.StatusUnauthorized, call("").Code)
    assert.Equal(t, http.StatusUnauthorized, call("garbage").Code)

    user, err := utils.NewAccessToken(secret, "bob", "user", 5)
    require.NoError(t, err)
    assert.Equal(t, http.StatusForbidden, call(user.Token).Code)

    forged, err := utils.NewAccessToken("other-secret", "admin", "admin", 5)
    require.NoError(t, err)
    assert.Equal(t, http.StatusUnauthorized, call(forged.Token).Code)

    admin, err := utils.NewAccessToken(secret, "admin", "admin", 5)
    require.NoError(t, err)
    rec := call(admin.Token)
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, "admin", rec.Body.String())
}

func TestAdminOnlyDisabled(t *testing.T) {
    e := echo.New()
    e.DELETE("/x", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }, AdminOnly(false, ""))
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/x", nil))
    assert.Equal(t, http.StatusNoContent, rec.Code)
}
