// Package idm manages the pool of small integer node ids of a session.
//
// Ids start at 1. Released ids are handed out again smallest first, before
// the low-water mark is advanced, so that rebuilding the same topology twice
// yields the same ids.
package idm

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
)

// ErrNotAllocated is returned by Release for an id that is not in use.
type ErrNotAllocated struct {
	ID int
}

func (e ErrNotAllocated) Error() string {
	return fmt.Sprintf("id %d is not allocated", e.ID)
}

// IsErrNotAllocated returns true if the cause of e is ErrNotAllocated.
func IsErrNotAllocated(e error) bool {
	_, ok := errors.Cause(e).(ErrNotAllocated)
	return ok
}

// IDM hands out and recycles ids. The zero value is ready to use. IDM is not
// safe for concurrent use.
type IDM struct {
	next        int
	reusable    []int
	inUse       map[int]struct{}
	preexisting map[int]struct{}
}

// New returns an empty IDM whose first id is 1.
func New() *IDM {
	i := &IDM{}
	i.init()
	return i
}

func (i *IDM) init() {
	if i.next == 0 {
		i.next = 1
	}
	if i.inUse == nil {
		i.inUse = make(map[int]struct{})
	}
	if i.preexisting == nil {
		i.preexisting = make(map[int]struct{})
	}
}

// Peek returns the id the next call to Allocate will return, without
// consuming it.
func (i *IDM) Peek() int {
	i.init()
	if len(i.reusable) > 0 {
		return i.reusable[0]
	}
	return i.next
}

// Allocate returns and consumes an id: the smallest reusable id if there is
// one, the low-water mark otherwise.
func (i *IDM) Allocate() int {
	i.init()
	var id int
	if len(i.reusable) > 0 {
		id = i.reusable[0]
		i.reusable = i.reusable[1:]
	} else {
		id = i.next
		i.next++
	}
	i.inUse[id] = struct{}{}
	return id
}

// Release returns id to the reusable queue. Releasing an id that is not in
// use fails and leaves the IDM unchanged.
func (i *IDM) Release(id int) error {
	i.init()
	if _, ok := i.inUse[id]; !ok {
		return ErrNotAllocated{ID: id}
	}
	delete(i.inUse, id)
	delete(i.preexisting, id)
	i.insertReusable(id)
	return nil
}

// MarkPreexisting records id as owned by the remote session. The id is never
// handed out while it stays in use, and the low-water mark is raised above
// it.
func (i *IDM) MarkPreexisting(id int) {
	i.init()
	if id <= 0 {
		return
	}
	i.inUse[id] = struct{}{}
	i.preexisting[id] = struct{}{}
	i.removeReusable(id)
	if id >= i.next {
		i.next = id + 1
	}
}

// RebuildReusePool makes every id below the low-water mark that is not in use
// reusable, then forgets the preexisting set. Without preexisting entries
// recorded since the last rebuild it does nothing.
func (i *IDM) RebuildReusePool() {
	i.init()
	if len(i.preexisting) == 0 {
		return
	}
	for id := 1; id < i.next; id++ {
		if _, ok := i.inUse[id]; ok {
			continue
		}
		i.insertReusable(id)
	}
	i.preexisting = make(map[int]struct{})
}

// Reset forgets every id. The next allocated id is 1 again.
func (i *IDM) Reset() {
	i.next = 1
	i.reusable = nil
	i.inUse = make(map[int]struct{})
	i.preexisting = make(map[int]struct{})
}

// Next returns the low-water mark.
func (i *IDM) Next() int {
	i.init()
	return i.next
}

// Reusable returns a sorted copy of the reusable queue.
func (i *IDM) Reusable() []int {
	return append([]int(nil), i.reusable...)
}

// InUse reports whether id is currently allocated or preexisting.
func (i *IDM) InUse(id int) bool {
	_, ok := i.inUse[id]
	return ok
}

func (i *IDM) insertReusable(id int) {
	idx := sort.SearchInts(i.reusable, id)
	if idx < len(i.reusable) && i.reusable[idx] == id {
		return
	}
	i.reusable = append(i.reusable, 0)
	copy(i.reusable[idx+1:], i.reusable[idx:])
	i.reusable[idx] = id
}

func (i *IDM) removeReusable(id int) {
	idx := sort.SearchInts(i.reusable, id)
	if idx < len(i.reusable) && i.reusable[idx] == id {
		i.reusable = append(i.reusable[:idx], i.reusable[idx+1:]...)
	}
}
