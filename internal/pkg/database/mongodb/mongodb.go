package mongodb

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/openmgc/mgc_core/internal/pkg/component"
	"github.com/openmgc/mgc_core/internal/pkg/msg"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Handler archives each accepted topology snapshot, keeping a history of
// how the microgrid's wiring changed over time.
type Handler struct {
	mux    *sync.Mutex
	inbox  <-chan msg.Msg
	pid    uuid.UUID
	config config
	stop   chan bool
}

type config struct {
	URI        string `json:"URI"`
	Port       string `json:"Port"`
	Database   string `json:"Database"`
	Collection string `json:"Collection"`
}

func redirectMsg(chIn <-chan msg.Msg, chOut chan<- msg.Msg) {
	for m := range chIn {
		chOut <- m
	}
}

func New(configPath string, system msg.Publisher) (Handler, error) {
	jsonConfig, err := ioutil.ReadFile(configPath)
	if err != nil {
		return Handler{}, err
	}
	cfg := config{}
	if err := json.Unmarshal(jsonConfig, &cfg); err != nil {
		return Handler{}, err
	}
	if cfg.Collection == "" {
		cfg.Collection = "topologySnapshots"
	}

	pid, _ := uuid.NewUUID()

	inbox := make(chan msg.Msg, 50)

	chTopology, err := system.Subscribe(pid, msg.Topology)
	if err != nil {
		return Handler{}, err
	}
	go redirectMsg(chTopology, inbox)

	stop := make(chan bool)

	return Handler{
		mux:    &sync.Mutex{},
		inbox:  inbox,
		pid:    pid,
		config: cfg,
		stop:   stop,
	}, nil
}

func topologyToBSON(m msg.Msg) (bson.M, bool) {
	topology, ok := m.Payload().(component.Topology)
	if !ok {
		return nil, false
	}
	return bson.M{
		"pid":         m.PID().String(),
		"recordedAt":  time.Now().UTC(),
		"components":  topology.Components,
		"connections": topology.Connections,
	}, true
}

func (h *Handler) StopProcess() {
	h.stop <- true
}

func (h Handler) Process() {
	//TODO: Handle reconnection to the MongoDB resource
	client, err := mongo.NewClient(options.Client().ApplyURI(h.config.URI + ":" + h.config.Port))
	if err != nil {
		log.Println("[Mongo]", err)
		return
	}

	ctx := context.TODO()
	if err := client.Connect(ctx); err != nil {
		log.Println("[Mongo]", err)
		return
	}
	defer client.Disconnect(ctx)

	collection := client.Database(h.config.Database).Collection(h.config.Collection)
loop:
	for {
		select {
		case m := <-h.inbox:
			if m.Topic() != msg.Topology {
				continue
			}
			doc, ok := topologyToBSON(m)
			if !ok {
				log.Println("[Mongo] dropped message with unexpected payload")
				continue
			}
			if _, err := collection.InsertOne(ctx, doc); err != nil {
				log.Println("[Mongo]", err)
			}
		case <-h.stop:
			break loop
		}
	}
	log.Println("[Mongo] Process Shutdown")
}
