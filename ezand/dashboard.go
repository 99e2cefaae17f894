package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/mkarci/ezan-tools/internal/ezanconfig"
	"github.com/mkarci/ezan-tools/internal/logtail"
	"github.com/mkarci/ezan-tools/internal/prayer"
)

type httpErr struct {
	code int
	err  error
}

func (h *httpErr) Error() string {
	return h.err.Error()
}

func httpError(code int, err error) error {
	return &httpErr{code, err}
}

func handleError(h func(http.ResponseWriter, *http.Request) error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}
		if err == context.Canceled {
			return // client canceled the request
		}
		code := http.StatusInternalServerError
		unwrapped := err
		if he, ok := err.(*httpErr); ok {
			code = he.code
			unwrapped = he.err
		}
		log.Printf("%s: HTTP %d %s", r.URL.Path, code, unwrapped)
		http.Error(w, unwrapped.Error(), code)
	})
}

var indexTmpl = template.Must(template.New("").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <title>ezand</title>
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <style>
body {
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
  background: #111827;
  color: #f9fafb;
  margin: 0;
  padding: 16px;
}
h1 { font-size: 1.5rem; font-weight: 500; }
table { border-collapse: collapse; }
td, th { padding: 4px 16px 4px 0; text-align: left; }
tr.consumed { color: #6b7280; }
tr.next td { color: #22c55e; }
#logs {
  background: #1f2937;
  padding: 12px;
  font-family: monospace;
  font-size: 0.8rem;
  white-space: pre-wrap;
  word-break: break-all;
}
button, input[type=range] { font-size: 1rem; }
.dim { color: #9ca3af; }
  </style>
</head>
<body>

<h1>ezand</h1>
<p id="clock" class="dim"></p>
<p>mode: <span id="mode"></span>
   <button id="toggle-mode">toggle</button></p>
<p>volume: <span id="volume-label"></span>
   <input type="range" id="volume" min="0" max="100"></p>
<table id="times"></table>
<p><button id="test">test next prayer</button></p>
<h2>log</h2>
<div id="logs"></div>

<script>
async function refresh() {
  const st = await (await fetch('/api/status')).json();
  document.getElementById('clock').textContent = st.current_time;
  document.getElementById('mode').textContent = st.mode;
  document.getElementById('volume').value = st.volume;
  document.getElementById('volume-label').textContent = st.volume + '%';
  const rows = (st.prayer_times || []).map(p => {
    let cls = p.consumed ? 'consumed' : '';
    if (st.next_prayer && st.next_prayer.name === p.name) cls = 'next';
    const extra = (st.next_prayer && st.next_prayer.name === p.name)
      ? ' (in ' + st.next_prayer.countdown + ')' : '';
    return '<tr class="' + cls + '"><td>' + p.name + '</td><td>' + p.time + extra + '</td></tr>';
  });
  document.getElementById('times').innerHTML = rows.join('');
  const logs = await (await fetch('/api/logs')).json();
  document.getElementById('logs').textContent = (logs.lines || []).join('\n');
}

document.getElementById('toggle-mode').addEventListener('click', async () => {
  const cur = document.getElementById('mode').textContent;
  await fetch('/api/mode', {
    method: 'POST',
    body: JSON.stringify({mode: cur === 'home' ? 'office' : 'home'}),
  });
  refresh();
});

document.getElementById('volume').addEventListener('change', async (e) => {
  await fetch('/api/volume', {
    method: 'POST',
    body: JSON.stringify({volume: parseInt(e.target.value, 10)}),
  });
  refresh();
});

document.getElementById('test').addEventListener('click', async () => {
  const st = await (await fetch('/api/status')).json();
  const prayer = st.next_prayer ? st.next_prayer.name : 'fajr';
  await fetch('/api/test', {
    method: 'POST',
    body: JSON.stringify({prayer: prayer}),
  });
  refresh();
});

refresh();
setInterval(refresh, 10000);
</script>

</body>
</html>`))

func (s *server) index(w http.ResponseWriter, r *http.Request) error {
	if r.URL.Path != "/" {
		return httpError(http.StatusNotFound, fmt.Errorf("not found"))
	}
	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, nil); err != nil {
		return err
	}
	_, err := io.Copy(w, &buf)
	return err
}

type prayerStatus struct {
	Name     string `json:"name"`
	Time     string `json:"time"`
	Consumed bool   `json:"consumed"`
}

type nextPrayer struct {
	Name      string `json:"name"`
	Time      string `json:"time"`
	Countdown string `json:"countdown"`
}

func (s *server) apiStatus(w http.ResponseWriter, r *http.Request) error {
	now := time.Now()
	sched, consumed := s.loop.Snapshot()

	var times []prayerStatus
	var next *nextPrayer
	if sched != nil {
		for _, name := range prayer.Names {
			times = append(times, prayerStatus{
				Name:     string(name),
				Time:     sched.Time(name).String(),
				Consumed: consumed[name],
			})
		}
		if name, at, ok := sched.Next(now); ok {
			until := time.Unix(prayerUnix(sched.Date(), at), 0).Sub(now)
			next = &nextPrayer{
				Name:      string(name),
				Time:      at.String(),
				Countdown: until.Truncate(time.Second).String(),
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(struct {
		Mode        string         `json:"mode"`
		Volume      int            `json:"volume"`
		PrayerTimes []prayerStatus `json:"prayer_times"`
		NextPrayer  *nextPrayer    `json:"next_prayer,omitempty"`
		CurrentTime string         `json:"current_time"`
	}{
		Mode:        s.mode(),
		Volume:      s.volume(),
		PrayerTimes: times,
		NextPrayer:  next,
		CurrentTime: now.Format("15:04:05"),
	})
}

func (s *server) apiMode(w http.ResponseWriter, r *http.Request) error {
	if r.Method != "POST" {
		return httpError(http.StatusBadRequest, fmt.Errorf("invalid method"))
	}
	var req struct {
		Mode string `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return httpError(http.StatusBadRequest, err)
	}
	if req.Mode != ezanconfig.ModeHome && req.Mode != ezanconfig.ModeOffice {
		return httpError(http.StatusBadRequest, fmt.Errorf("unknown mode %q", req.Mode))
	}
	if err := s.setMode(req.Mode); err != nil {
		return err
	}
	s.log.Printf("dashboard: mode changed to %s", req.Mode)
	if s.publisher != nil {
		s.publisher.publish(s.currentStatus())
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(map[string]string{"mode": req.Mode})
}

func (s *server) apiVolume(w http.ResponseWriter, r *http.Request) error {
	if r.Method != "POST" {
		return httpError(http.StatusBadRequest, fmt.Errorf("invalid method"))
	}
	var req struct {
		Volume int `json:"volume"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return httpError(http.StatusBadRequest, err)
	}
	if req.Volume < 0 || req.Volume > 100 {
		return httpError(http.StatusBadRequest, fmt.Errorf("volume %d out of range", req.Volume))
	}
	if err := s.setVolume(req.Volume); err != nil {
		return err
	}
	s.log.Printf("dashboard: volume set to %d%%", req.Volume)
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(map[string]int{"volume": req.Volume})
}

// apiTest fires the trigger actions for one prayer immediately, without
// touching the consumed set, so the real trigger still fires at its time.
func (s *server) apiTest(w http.ResponseWriter, r *http.Request) error {
	if r.Method != "POST" {
		return httpError(http.StatusBadRequest, fmt.Errorf("invalid method"))
	}
	if s.mode() == ezanconfig.ModeOffice {
		return httpError(http.StatusConflict, fmt.Errorf("office mode active, triggers disabled"))
	}
	var req struct {
		Prayer string `json:"prayer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return httpError(http.StatusBadRequest, err)
	}
	s.mu.Lock()
	url, ok := s.cfg.Videos[req.Prayer]
	s.mu.Unlock()
	if !ok {
		return httpError(http.StatusNotFound, fmt.Errorf("unknown prayer %q", req.Prayer))
	}

	s.log.Printf("dashboard: manual %s trigger", req.Prayer)
	if err := s.actions.Wake(); err != nil {
		s.log.Printf("ERROR: waking system: %v", err)
	}
	if err := s.actions.SetVolume(s.volume()); err != nil {
		s.log.Printf("ERROR: setting volume: %v", err)
	}
	if err := s.actions.OpenURL(url); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *server) apiLogs(w http.ResponseWriter, r *http.Request) error {
	s.mu.Lock()
	path := s.cfg.LogFile
	s.mu.Unlock()
	lines, err := logtail.Tail(path, 20)
	if err != nil {
		lines = []string{fmt.Sprintf("reading %s: %v", path, err)}
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(struct {
		Lines []string `json:"lines"`
	}{Lines: lines})
}
