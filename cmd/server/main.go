package main

import (
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tamaleria/orderform/internal/config"
	"github.com/tamaleria/orderform/internal/handler"
	"github.com/tamaleria/orderform/internal/order"
	"github.com/tamaleria/orderform/internal/router"
	"github.com/tamaleria/orderform/internal/session"
	"github.com/tamaleria/orderform/internal/submit"
	"github.com/tamaleria/orderform/internal/workflow"
	"github.com/tamaleria/orderform/internal/ws"
)

const sweepInterval = time.Minute

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("load configuration")
	}

	hub := ws.NewHub()
	go hub.Run()

	client := submit.NewClient(cfg.Endpoint.URL)

	store := session.NewStore(cfg.Session.TTL, func() *workflow.Controller {
		return workflow.NewController(order.New(), client)
	})

	// Every change to a session's order or stage is pushed to all of that
	// session's open tabs.
	store.OnCreate = func(sess *session.Session) {
		notify := func() {
			payload, err := json.Marshal(handler.Snapshot(sess))
			if err != nil {
				log.WithError(err).Error("marshal order snapshot")
				return
			}
			hub.BroadcastToSession(sess.ID, ws.Event{Type: "order_changed", Payload: payload})
		}
		sess.Flow.Subscribe(notify)
		sess.Flow.Order().Subscribe(notify)
	}
	go store.Run(sweepInterval)

	page, err := handler.NewPageHandler()
	if err != nil {
		log.WithError(err).Fatal("load page template")
	}

	r := router.New(cfg, store, hub, page)

	log.WithField("port", cfg.Server.Port).Info("order form listening")
	if err := http.ListenAndServe(":"+cfg.Server.Port, r); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
