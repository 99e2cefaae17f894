package main

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// statusPublisher publishes a retained status message so other home
// automation can see the next prayer without polling the dashboard.
type statusPublisher struct {
	client mqtt.Client
	topic  string
}

func newStatusPublisher(broker string) (*statusPublisher, error) {
	opts := mqtt.NewClientOptions().AddBroker(broker)
	opts.SetClientID("github.com/mkarci/ezan-tools/ezand@" + hostname)
	opts.SetConnectRetry(true)
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("MQTT connection failed: %v", token.Error())
	}
	return &statusPublisher{
		client: client,
		topic:  "ezan/" + hostname + "/status",
	}, nil
}

type mqttStatus struct {
	Mode       string `json:"mode"`
	Volume     int    `json:"volume"`
	NextPrayer string `json:"next_prayer,omitempty"`
	NextTime   string `json:"next_time,omitempty"`
	Triggered  int    `json:"triggered_today"`
}

func (p *statusPublisher) publish(st mqttStatus) {
	b, err := json.Marshal(st)
	if err != nil {
		return
	}
	p.client.Publish(p.topic, 0 /* qos */, true /* retained */, string(b))
}

func (s *server) currentStatus() mqttStatus {
	sched, consumed := s.loop.Snapshot()
	st := mqttStatus{
		Mode:      s.mode(),
		Volume:    s.volume(),
		Triggered: len(consumed),
	}
	if sched != nil {
		if name, at, ok := sched.Next(time.Now()); ok {
			st.NextPrayer = string(name)
			st.NextTime = at.String()
		}
	}
	return st
}
