package ecs

import "strconv"

// Entity identifies a character, platform, camera or any other object in a
// World. The low 32 bits hold a slot index and the high 32 bits the slot's
// generation, so a handle to a destroyed entity never aliases the entity
// that later reuses its slot. The zero Entity is never issued.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

// String formats the raw handle; it appears in logs and event payloads.
func (e Entity) String() string {
	return strconv.FormatUint(uint64(e), 10)
}

// Valid reports whether e could have been issued by a World. It says nothing
// about whether the entity is still alive.
func (e Entity) Valid() bool {
	return e > 0
}
