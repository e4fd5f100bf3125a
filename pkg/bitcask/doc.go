// Package bitcask exposes the key-value store behind a small interface with
// two interchangeable backends: a durable, log-structured store on disk and
// a volatile in-memory map.
//
// Example:
//
//	store, err := bitcask.Open(bitcask.WithPath("data/bitcask.log"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	err = store.Set([]byte("foo"), []byte("bar"))
//	val, found, err := store.Get([]byte("foo"))
//
// Code written against Store works unchanged with
// bitcask.Open(bitcask.WithBackend(bitcask.BackendMemory)).
package bitcask
