package dragonball

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

const gokuDetailJSON = `{"id":1,"name":"Goku","ki":"60.000.000","maxKi":"90 Septillion","race":"Saiyan","gender":"Male","description":"El protagonista de la serie.","image":"https://dragonball-api.com/characters/goku_normal.webp","affiliation":"Z Fighter","deletedAt":null,"transformations":[{"id":1,"name":"Goku SSJ","image":"https://dragonball-api.com/transformaciones/goku_ssj.webp","ki":"3 Billion","deletedAt":null}]}`

const vegetaDetailJSON = `{"id":2,"name":"Vegeta","ki":"54.000.000","maxKi":"19.84 Septillion","race":"Saiyan","gender":"Male","description":"Príncipe de los Saiyans.","image":"https://dragonball-api.com/characters/vegeta_normal.webp","affiliation":"Z Fighter","deletedAt":null,"originPlanet":{"id":2,"name":"Vegeta","isDestroyed":true,"description":"Planeta natal de los Saiyans.","image":"https://dragonball-api.com/planetas/Planeta_Vegeta.webp","deletedAt":null},"transformations":[{"id":5,"name":"Vegeta SSJ","image":"x","ki":"330.000.000","deletedAt":null},{"id":6,"name":"Vegeta SSJ2","image":"y","ki":"24 Billion","deletedAt":null}],"unknownField":{"nested":[1,2,3]}}`

const listingPage2JSON = `{"items":[{"id":11,"name":"Gohan","ki":"45.000.000","maxKi":"40 Septillion","race":"Saiyan","gender":"Male","description":"","image":"","affiliation":"Z Fighter","deletedAt":null}],"meta":{"totalItems":58,"itemCount":10,"itemsPerPage":10,"totalPages":6,"currentPage":2},"links":{"first":"https://dragonball-api.com/api/characters?limit=10","previous":"https://dragonball-api.com/api/characters?page=1&limit=10","next":"https://dragonball-api.com/api/characters?page=3&limit=10","last":"https://dragonball-api.com/api/characters?page=6&limit=10"}}`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeAPI serves a fixed body and records the last request it saw.
type fakeAPI struct {
	server  *httptest.Server
	hits    atomic.Int32
	lastURL atomic.Value
}

func newFakeAPI(t *testing.T, status int, body string) *fakeAPI {
	t.Helper()
	f := &fakeAPI{}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		f.lastURL.Store(r.URL.String())
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeAPI) client() *Client {
	return NewClient(WithHTTPClient(f.server.Client()), WithLogger(quietLogger())).WithBaseURL(f.server.URL)
}

func (f *fakeAPI) requestURI() string {
	v, _ := f.lastURL.Load().(string)
	return v
}
