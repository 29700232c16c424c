package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/openmgc/mgc_core/internal/pkg/database/mongodb"
	"github.com/openmgc/mgc_core/internal/pkg/datastreams/natshandler"
	"github.com/openmgc/mgc_core/internal/pkg/graph"
	"github.com/openmgc/mgc_core/internal/pkg/poller"
	"github.com/openmgc/mgc_core/internal/pkg/remote"
	"github.com/openmgc/mgc_core/internal/pkg/root"
	"github.com/openmgc/mgc_core/internal/pkg/webservice"
)

func main() {
	log.Println("[Main] Starting MGC_Core v0.1.0")
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	log.Println("[Main] Building Component Graph")
	componentGraph, err := graph.New()
	if err != nil {
		panic(err)
	}

	log.Println("[Main] Building Remote Source")
	source, err := remote.New("./config/remote/httpsource.json")
	if err != nil {
		panic(err)
	}

	log.Println("[Main] Building Refresh Poller")
	refreshPoller, err := poller.New("./config/poller/poller.json", componentGraph, source, nil)
	if err != nil {
		panic(err)
	}

	log.Println("[Main] Assembling System")
	system, err := root.NewSystem(componentGraph, refreshPoller)
	if err != nil {
		panic(err)
	}

	log.Println("[Main] Connecting NATS Service")
	natsHandler, err := natshandler.New("./config/datastreams/nats.json", &system)
	if err != nil {
		panic(err)
	}
	go natsHandler.Process()

	log.Println("[Main] Connecting MongoDB Service")
	mongoHandler, err := mongodb.New("./config/database/mongodb.json", &system)
	if err != nil {
		panic(err)
	}
	go mongoHandler.Process()

	log.Println("[Main] Starting Webservice")
	server, err := webservice.New("./config/webservice/webservice.json", system.Graph())
	if err != nil {
		panic(err)
	}
	go server.Process()

	log.Println("[Main] Initial Topology Refresh")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := refreshPoller.RefreshOnce(ctx); err != nil {
		log.Printf("[Main] Initial refresh failed, continuing with empty graph: %v", err)
	}
	cancel()

	log.Println("[Main] Starting refresh loop")
	go refreshPoller.Process()

	<-sigs
	log.Println("[Main] Stopping system")
	refreshPoller.Stop()
	natsHandler.Stop()
	mongoHandler.StopProcess()
	time.Sleep(1 * time.Second)
}
