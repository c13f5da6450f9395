package rwsem_test

import (
	"fmt"
	"sync"

	"github.com/llxisdsh/rwsem"
)

func ExampleSem_Downgrade() {
	var (
		sem    rwsem.Sem
		config = map[string]string{}
		wg     sync.WaitGroup
	)

	sem.Lock()
	config["mode"] = "fast"
	// Keep reading what we just wrote while letting other readers in.
	sem.Downgrade()

	wg.Add(1)
	go func() {
		defer wg.Done()
		sem.RLock()
		defer sem.RUnlock()
		fmt.Println("reader sees", config["mode"])
	}()
	wg.Wait()

	fmt.Println("writer sees", config["mode"])
	sem.RUnlock()
	// Output:
	// reader sees fast
	// writer sees fast
}

func ExampleGroup() {
	var g rwsem.Group[string]

	g.Lock("user-1")
	fmt.Println("updating user-1")
	g.Unlock("user-1")

	g.RLock("user-1")
	fmt.Println("reading user-1")
	g.RUnlock("user-1")
	// Output:
	// updating user-1
	// reading user-1
}
