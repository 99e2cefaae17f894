package prayer

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const aladhanReply = `{
  "code": 200,
  "status": "OK",
  "data": {
    "timings": {
      "Fajr": "05:32",
      "Sunrise": "07:07",
      "Dhuhr": "13:58",
      "Asr": "17:36",
      "Maghrib": "20:48",
      "Isha": "22:17"
    }
  }
}`

func testSource(handler http.HandlerFunc) (*Source, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return &Source{
		Location: Location{City: "Barcelona", Country: "Spain", Method: 13},
		BaseURL:  srv.URL,
		Client:   srv.Client(),
	}, srv
}

func TestFetch(t *testing.T) {
	date := time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC)
	var gotQuery string
	source, srv := testSource(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, aladhanReply)
	})
	defer srv.Close()

	sched, err := source.Fetch(context.Background(), date)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := sched.Time(Fajr), TimeOfDay(5*60+32); got != want {
		t.Errorf("Time(fajr) = %v, want %v", got, want)
	}
	if got, want := sched.Time(Isha), TimeOfDay(22*60+17); got != want {
		t.Errorf("Time(isha) = %v, want %v", got, want)
	}
	for _, want := range []string{"city=Barcelona", "country=Spain", "method=13", "date=26-08-2026"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("request query %q does not contain %q", gotQuery, want)
		}
	}
}

func TestFetchErrors(t *testing.T) {
	date := time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC)

	t.Run("HTTPError", func(t *testing.T) {
		source, srv := testSource(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "internal", http.StatusInternalServerError)
		})
		defer srv.Close()
		if _, err := source.Fetch(context.Background(), date); err == nil {
			t.Error("Fetch with HTTP 500 succeeded, want error")
		}
	})

	t.Run("APIError", func(t *testing.T) {
		source, srv := testSource(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"code": 400, "status": "Bad Request"}`)
		})
		defer srv.Close()
		if _, err := source.Fetch(context.Background(), date); err == nil {
			t.Error("Fetch with code 400 envelope succeeded, want error")
		}
	})

	t.Run("MissingTiming", func(t *testing.T) {
		source, srv := testSource(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"code": 200, "status": "OK", "data": {"timings": {"Fajr": "05:32"}}}`)
		})
		defer srv.Close()
		if _, err := source.Fetch(context.Background(), date); err == nil {
			t.Error("Fetch with incomplete timings succeeded, want error")
		}
	})

	t.Run("Unreachable", func(t *testing.T) {
		source, srv := testSource(func(w http.ResponseWriter, r *http.Request) {})
		srv.Close() // connection refused from here on
		if _, err := source.Fetch(context.Background(), date); err == nil {
			t.Error("Fetch against closed server succeeded, want error")
		}
	})
}
