// cmd/root.go
package cmd

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ridepool/dispatchsim/internal/config"
	sim "github.com/ridepool/dispatchsim/sim"
	"gonum.org/v1/gonum/spatial/r2"
)

var (
	nVehicles         int
	seatCapacity      int
	velocity          float64
	dispatcherName    string
	maxRelativeDetour float64
	nReqs             int
	rate              float64
	seed              int64
	boundingBox       float64
	logLevel          string
	configPath        string
)

var rootCmd = &cobra.Command{
	Use:   "dispatchsim",
	Short: "Insertion-dispatch simulator for ridepooling fleets",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a fleet simulation over synthetically generated requests",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		// A --config file, when given, supplies the fleet/space/dispatcher
		// configuration and the request-generation rate/seed/count; bare
		// flags are the fallback for a quick ad hoc run.
		var cfg sim.Config[r2.Vec]
		var space *sim.R2Space
		runReqs, runRate, runSeed := nReqs, rate, seed

		if configPath != "" {
			fc, err := config.Load(configPath)
			if err != nil {
				logrus.Fatalf("loading config: %v", err)
			}
			cfg, err = fc.Build()
			if err != nil {
				logrus.Fatalf("building config: %v", err)
			}
			space = cfg.Space.(*sim.R2Space)
			if fc.NReqs != nil {
				runReqs = *fc.NReqs
			}
			if fc.Requests.Rate > 0 {
				runRate = fc.Requests.Rate
			}
			runSeed = fc.Requests.Seed
		} else {
			space = sim.NewEuclideanSpace(velocity, -boundingBox, boundingBox, -boundingBox, boundingBox)

			locations := make(map[string]r2.Vec, nVehicles)
			for i := 0; i < nVehicles; i++ {
				locations[fmt.Sprintf("%d", i)] = r2.Vec{X: 0, Y: 0}
			}

			cfg = sim.Config[r2.Vec]{
				InitialLocations: locations,
				SeatCapacities:   sim.UniformSeatCapacities(locations, uint(seatCapacity)),
				Space:            space,
				DispatcherName:   dispatcherName,
				DispatcherParams: sim.DispatcherParams{MaxRelativeDetour: maxRelativeDetour},
				NReqs:            &runReqs,
			}
		}

		logrus.Infof("starting simulation: %d vehicles, dispatcher=%s, n_reqs=%d, rate=%.3f",
			len(cfg.InitialLocations), cfg.DispatcherName, runReqs, runRate)

		fleet, err := cfg.BuildFleet()
		if err != nil {
			logrus.Fatalf("invalid configuration: %v", err)
		}

		requests := generatePoissonRequests(space, runReqs, runRate, runSeed)
		loop := sim.NewFleetLoop(fleet)

		accepted, rejected := 0, 0
		for evt := range loop.Run(sim.NewSliceRequestIterator(requests), nil) {
			switch e := evt.(type) {
			case sim.RequestAcceptanceEvent[r2.Vec]:
				accepted++
				logrus.Debugf("t=%.2f accepted %s -> vehicle %s", e.Timestamp(), e.RequestID, e.VehicleID)
			case sim.RequestRejectionEvent[r2.Vec]:
				rejected++
				logrus.Debugf("t=%.2f rejected %s (%s)", e.Timestamp(), e.RequestID, e.Reason)
			case sim.PickupEvent[r2.Vec]:
				logrus.Debugf("t=%.2f pickup %s on vehicle %s", e.Timestamp(), e.RequestID, e.VehicleID)
			case sim.DeliveryEvent[r2.Vec]:
				logrus.Debugf("t=%.2f delivery %s on vehicle %s", e.Timestamp(), e.RequestID, e.VehicleID)
			}
		}

		logrus.Infof("simulation complete: %d accepted, %d rejected", accepted, rejected)
	},
}

// generatePoissonRequests synthesizes nReqs requests with exponential
// interarrival times at the given rate (requests per unit time), uniformly
// scattered origins/destinations, and open time windows. A stand-in for the
// out-of-core request generator this module treats as an external
// collaborator.
func generatePoissonRequests(space *sim.R2Space, nReqs int, rate float64, seed int64) []*sim.Request[r2.Vec] {
	rng := rand.New(rand.NewSource(seed))
	out := make([]*sim.Request[r2.Vec], 0, nReqs)
	t := 0.0
	for i := 0; i < nReqs; i++ {
		t += rng.ExpFloat64() / rate
		origin := space.RandomPoint(rng)
		dest := space.RandomPoint(rng)
		out = append(out, sim.NewTransportationRequest(
			fmt.Sprintf("%d", i), t, origin, dest, sim.OpenTimeWindow(), sim.OpenTimeWindow(),
		))
	}
	return out
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	runCmd.Flags().IntVar(&nVehicles, "vehicles", 10, "Number of vehicles in the fleet")
	runCmd.Flags().IntVar(&seatCapacity, "capacity", 4, "Seat capacity per vehicle")
	runCmd.Flags().Float64Var(&velocity, "velocity", 1.0, "Vehicle velocity (distance per unit time)")
	runCmd.Flags().StringVar(&dispatcherName, "dispatcher", "brute-force", "Dispatcher strategy: brute-force or simple-ellipse")
	runCmd.Flags().Float64Var(&maxRelativeDetour, "max-relative-detour", 0.5, "Relative-detour bound for the simple-ellipse dispatcher")
	runCmd.Flags().IntVar(&nReqs, "n-reqs", 1000, "Number of synthetic requests to generate")
	runCmd.Flags().Float64Var(&rate, "rate", 1.0, "Poisson arrival rate (requests per unit time)")
	runCmd.Flags().Int64Var(&seed, "seed", 1, "Random seed for request generation")
	runCmd.Flags().Float64Var(&boundingBox, "bbox", 100.0, "Half-width of the square region requests are scattered over")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (debug, info, warn, error)")
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML run configuration; overrides --vehicles/--capacity/--velocity/--dispatcher/--max-relative-detour/--bbox/--n-reqs when set")

	rootCmd.AddCommand(runCmd)
}
