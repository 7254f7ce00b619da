package hh

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"
)

type recordedPauses struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (r *recordedPauses) pause(_ context.Context, d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.delays = append(r.delays, d)
}

func (r *recordedPauses) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.delays)
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *recordedPauses) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{BaseURL: srv.URL + "/", HTTPClient: srv.Client()})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	rec := &recordedPauses{}
	client.pause = rec.pause
	return client, rec
}

func TestNewClientDefaults(t *testing.T) {
	c, err := NewClient(Config{})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if c.baseURL != defaultBaseURL {
		t.Errorf("baseURL = %q, want %q", c.baseURL, defaultBaseURL)
	}
	if c.PageSize() != 20 {
		t.Errorf("PageSize() = %d, want 20", c.PageSize())
	}
	if c.delay != 200*time.Millisecond {
		t.Errorf("delay = %v, want 200ms", c.delay)
	}
	if c.userAgent == "" {
		t.Error("userAgent must default to a non-empty value")
	}

	noDelay, err := NewClient(Config{Delay: -1})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if noDelay.delay != 0 {
		t.Errorf("negative Delay should disable the pause, got %v", noDelay.delay)
	}
}

func TestEmployerVacanciesWalksEveryPage(t *testing.T) {
	var (
		mu    sync.Mutex
		pages []int
	)
	mux := http.NewServeMux()
	mux.HandleFunc("/vacancies", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("employer_id") != "42" {
			t.Errorf("employer_id = %q, want 42", q.Get("employer_id"))
		}
		if q.Get("per_page") != "20" {
			t.Errorf("per_page = %q, want 20", q.Get("per_page"))
		}
		page, _ := strconv.Atoi(q.Get("page"))

		mu.Lock()
		pages = append(pages, page)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"items":[{"id":"v%d-a","name":"A%d"},{"id":"v%d-b","name":"B%d"}],"pages":3,"page":%d}`,
			page, page, page, page, page)
	})

	client, pauses := newTestClient(t, mux)

	got, err := client.EmployerVacancies(context.Background(), "42")
	if err != nil {
		t.Fatalf("EmployerVacancies: %v", err)
	}

	if len(pages) != 3 || pages[0] != 0 || pages[1] != 1 || pages[2] != 2 {
		t.Fatalf("requested pages = %v, want [0 1 2]", pages)
	}

	want := []string{"v0-a", "v0-b", "v1-a", "v1-b", "v2-a", "v2-b"}
	if len(got) != len(want) {
		t.Fatalf("got %d vacancies, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("vacancy[%d].ID = %q, want %q", i, got[i].ID, id)
		}
	}

	if pauses.count() != 3 {
		t.Errorf("pauses = %d, want one per request (3)", pauses.count())
	}
}

func TestEmployerVacanciesSinglePage(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `{"items":[{"id":"1"}],"pages":1}`)
	}))

	got, err := client.EmployerVacancies(context.Background(), "7")
	if err != nil {
		t.Fatalf("EmployerVacancies: %v", err)
	}
	if calls != 1 || len(got) != 1 {
		t.Fatalf("calls = %d, items = %d; want 1 and 1", calls, len(got))
	}
}

func TestEmployerVacanciesZeroPages(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `{"items":[],"pages":0}`)
	}))

	got, err := client.EmployerVacancies(context.Background(), "7")
	if err != nil {
		t.Fatalf("EmployerVacancies: %v", err)
	}
	if calls != 1 || len(got) != 0 {
		t.Fatalf("calls = %d, items = %d; want 1 and 0", calls, len(got))
	}
}

func TestEmployerVacanciesReturnsPartialResultOnBadPage(t *testing.T) {
	client, pauses := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{"items":[{"id":"first"}],"pages":5}`)
	}))

	got, err := client.EmployerVacancies(context.Background(), "42")
	if err == nil {
		t.Fatal("expected an error for the failed page")
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error %v is not a *StatusError", err)
	}
	if statusErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode = %d, want 429", statusErr.StatusCode)
	}

	if len(got) != 1 || got[0].ID != "first" {
		t.Fatalf("partial result = %+v, want the first page only", got)
	}
	if pauses.count() != 2 {
		t.Errorf("pauses = %d, want 2 (the failed call pauses too)", pauses.count())
	}
}

func TestEmployerVacanciesDecodesSalary(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items":[
			{"id":"1","name":"Go dev","url":"https://api.hh.ru/vacancies/1","salary":{"from":100,"to":null,"currency":"RUR"},"employer":{"id":"42"}},
			{"id":"2","name":"PM","salary":null,"employer":{"id":"42"}}
		],"pages":1}`)
	}))

	got, err := client.EmployerVacancies(context.Background(), "42")
	if err != nil {
		t.Fatalf("EmployerVacancies: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d vacancies, want 2", len(got))
	}

	first := got[0]
	if first.Salary == nil || first.Salary.From == nil || *first.Salary.From != 100 {
		t.Fatalf("first salary = %+v, want from=100", first.Salary)
	}
	if first.Salary.To != nil {
		t.Errorf("first salary.to = %v, want nil", *first.Salary.To)
	}
	if first.Salary.Currency != "RUR" {
		t.Errorf("currency = %q, want RUR", first.Salary.Currency)
	}
	if first.Employer.ID != "42" {
		t.Errorf("employer id = %q, want 42", first.Employer.ID)
	}
	if got[1].Salary != nil {
		t.Errorf("second salary = %+v, want nil", got[1].Salary)
	}
}

func TestSearchEmployer(t *testing.T) {
	client, pauses := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/employers" {
			t.Errorf("path = %q, want /employers", r.URL.Path)
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("User-Agent header is missing")
		}
		q := r.URL.Query()
		if q.Get("per_page") != "1" {
			t.Errorf("per_page = %q, want 1", q.Get("per_page"))
		}
		switch q.Get("text") {
		case "Yandex":
			fmt.Fprint(w, `{"items":[{"id":"1740","name":"Яндекс","url":"https://api.hh.ru/employers/1740"}],"found":1}`)
		case "broken":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			fmt.Fprint(w, `{"items":[],"found":0}`)
		}
	}))

	ctx := context.Background()

	got, err := client.SearchEmployer(ctx, "Yandex")
	if err != nil {
		t.Fatalf("SearchEmployer(Yandex): %v", err)
	}
	if got == nil || got.ID != "1740" || got.URL != "https://api.hh.ru/employers/1740" {
		t.Fatalf("SearchEmployer(Yandex) = %+v", got)
	}

	missing, err := client.SearchEmployer(ctx, "nobody")
	if err != nil {
		t.Fatalf("SearchEmployer(nobody): %v", err)
	}
	if missing != nil {
		t.Fatalf("SearchEmployer(nobody) = %+v, want nil", missing)
	}

	_, err = client.SearchEmployer(ctx, "broken")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("SearchEmployer(broken) error = %v, want status 500", err)
	}

	if pauses.count() != 3 {
		t.Errorf("pauses = %d, want 3", pauses.count())
	}
}

func TestSearchEmployerRequiresName(t *testing.T) {
	client, pauses := newTestClient(t, http.NotFoundHandler())
	if _, err := client.SearchEmployer(context.Background(), "  "); err == nil {
		t.Fatal("expected an error for a blank name")
	}
	if pauses.count() != 0 {
		t.Error("no request should be made for a blank name")
	}
}

func TestEmployer(t *testing.T) {
	client, pauses := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/employers/1740":
			fmt.Fprint(w, `{"id":"1740","name":"Яндекс","url":"https://api.hh.ru/employers/1740","open_vacancies":12}`)
		case "/employers/garbage":
			fmt.Fprint(w, `{"id":`)
		default:
			http.NotFound(w, r)
		}
	}))

	ctx := context.Background()

	got, err := client.Employer(ctx, "1740")
	if err != nil {
		t.Fatalf("Employer(1740): %v", err)
	}
	if got.Name != "Яндекс" || got.OpenVacancies != 12 {
		t.Fatalf("Employer(1740) = %+v", got)
	}

	_, err = client.Employer(ctx, "404")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusNotFound {
		t.Fatalf("Employer(404) error = %v, want status 404", err)
	}

	_, err = client.Employer(ctx, "garbage")
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("Employer(garbage) error = %v, want *DecodeError", err)
	}

	if pauses.count() != 3 {
		t.Errorf("pauses = %d, want 3", pauses.count())
	}
}

func TestSleepWithContextStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	sleepWithContext(ctx, time.Minute)
	if time.Since(start) > time.Second {
		t.Fatal("sleepWithContext ignored a cancelled context")
	}
}
