/*
	Basic Script that churns a local store with overwrites to build up a large log for testing.
*/

package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/0xRadioAc7iv/logcask/internal/logging"
	"github.com/0xRadioAc7iv/logcask/internal/utils"
	"github.com/0xRadioAc7iv/logcask/pkg/bitcask"
)

const (
	concurrency = 6

	// Fixed universe
	totalKeys   = 100
	totalValues = 100

	// Per-cycle behavior
	keysPerCycleWrite = 20
	cyclesPerWorker   = 500

	sleepBetweenCycles = 10 * time.Millisecond

	progressEvery = 100
)

func main() {
	path := flag.String("path", "churn.log", "Log file to write")
	hint := flag.Bool("hint", true, "Write a hint file when done")
	flag.Parse()

	logger := logging.NewConsole("info")

	store, err := bitcask.Open(
		bitcask.WithPath(*path),
		bitcask.WithHintFile(*hint),
		bitcask.WithLogger(logger),
	)
	if err != nil {
		logger.Fatal().Err(err).Str("path", *path).Msg("cannot open store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error().Err(err).Str("path", *path).Msg("closing store")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stop := utils.OnProcessInterruptOrKill(cancel)
	defer stop()

	start := time.Now()
	fmt.Println("Starting Bitcask churn-heavy load generator")

	keys := makeKeys(totalKeys)
	values := makeValues(totalValues)

	var wg sync.WaitGroup

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			runWorker(ctx, id, store, keys, values)
		}(i)
	}

	wg.Wait()
	fmt.Printf("Load finished in %v\n", time.Since(start))
}

func runWorker(ctx context.Context, id int, store bitcask.Store, keys []string, values []string) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(id)))

	for cycle := 1; cycle <= cyclesPerWorker; cycle++ {
		if ctx.Err() != nil {
			fmt.Printf("[worker %d] interrupted after %d cycles\n", id, cycle-1)
			return
		}

		// ---- WRITE / OVERWRITE PHASE ----
		for i := 0; i < keysPerCycleWrite; i++ {
			key := keys[rng.Intn(len(keys))]
			val := values[rng.Intn(len(values))]

			if err := store.Set([]byte(key), []byte(val)); err != nil {
				fmt.Printf("[worker %d] SET error: %v\n", id, err)
				return
			}
		}

		// ---- READ-BACK PHASE ----
		for i := 0; i < keysPerCycleWrite/2; i++ {
			key := keys[rng.Intn(len(keys))]

			if _, _, err := store.Get([]byte(key)); err != nil {
				fmt.Printf("[worker %d] GET error: %v\n", id, err)
				return
			}
		}

		// ---- REWRITE PHASE (forces overwrite garbage) ----
		for i := 0; i < keysPerCycleWrite/2; i++ {
			key := keys[rng.Intn(len(keys))]
			val := values[rng.Intn(len(values))]

			if err := store.Set([]byte(key), []byte(val)); err != nil {
				fmt.Printf("[worker %d] REWRITE error: %v\n", id, err)
				return
			}
		}

		if cycle%progressEvery == 0 {
			fmt.Printf("[worker %d] completed %d cycles\n", id, cycle)
		}

		if sleepBetweenCycles > 0 {
			time.Sleep(sleepBetweenCycles)
		}
	}
}

func makeKeys(n int) []string {
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		keys[i] = fmt.Sprintf("key-%03d", i)
	}
	return keys
}

func makeValues(n int) []string {
	values := make([]string, n)
	for i := 0; i < n; i++ {
		values[i] = fmt.Sprintf("value-%03d-xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx", i)
	}
	return values
}
