package vantage

import (
	"testing"
)

func TestQuery_Map(t *testing.T) {
	type Comp1 struct{ a int }
	type Comp2 struct{ b float32 }
	type Comp3 struct{}

	ecs := MakeEcs()
	ecs.addEntity(Comp1{a: 1})                                 // comp1 only                       -- shouldn't match
	id2 := ecs.addEntity(Comp1{a: 2}, Comp2{b: 1.37})          // comp1 & comp2                    -- should match
	id3 := ecs.addEntity(Comp1{a: 3}, Comp2{b: 4.20}, Comp3{}) // comp1 & comp2 + something extra  -- should match
	ecs.addEntity(Comp1{a: 4}, Comp3{})                        // comp1 + something extra          -- shouldn't match
	ecs.addEntity(Comp2{b: 3.14})                              // comp2 only                       -- shouldn't match

	query := Query2[Comp1, Comp2]{ecs: &ecs}

	// Archetype iteration order is map order, so collect and compare.
	got := make(map[EntityId]Comp1)
	query.Map(func(entityId EntityId, comp1 *Comp1, comp2 *Comp2) bool {
		got[entityId] = *comp1
		return true
	})

	if len(got) != 2 {
		t.Errorf("Unexpected number of results, got %v", len(got))
	}
	if got[id2] != (Comp1{a: 2}) {
		t.Errorf("Unexpected component for %v: %v", id2, got[id2])
	}
	if got[id3] != (Comp1{a: 3}) {
		t.Errorf("Unexpected component for %v: %v", id3, got[id3])
	}
}

func TestQuery_MapMutatesInPlace(t *testing.T) {
	type Comp struct{ a int }

	ecs := MakeEcs()
	id := ecs.addEntity(Comp{a: 1})

	query := Query1[Comp]{ecs: &ecs}
	query.Map(func(entityId EntityId, c *Comp) bool {
		c.a = 42
		return true
	})

	arch := ecs.archetypes[ecs.entityIndex[id]]
	col := arch.columns[identifyComponents1[Comp](&ecs)].([]Comp)
	if col[arch.entities[id]].a != 42 {
		t.Errorf("Expected writes through the column pointer to stick")
	}
}

func TestQuery_MapOptional(t *testing.T) {
	type Comp1 struct{ a int }
	type Comp2 struct{ b int }

	ecs := MakeEcs()
	idWith := ecs.addEntity(Comp1{a: 1}, Comp2{b: 10})
	idWithout := ecs.addEntity(Comp1{a: 2})

	query := Query2[Comp1, Comp2]{ecs: &ecs}

	got := make(map[EntityId]*Comp2)
	query.Map(func(entityId EntityId, c1 *Comp1, c2 *Comp2) bool {
		got[entityId] = c2
		return true
	}, Comp2{})

	if len(got) != 2 {
		t.Errorf("Expected the optional query to match both entities, got %v", len(got))
	}
	if got[idWith] == nil || got[idWith].b != 10 {
		t.Errorf("Expected the present optional to be passed, got %v", got[idWith])
	}
	if got[idWithout] != nil {
		t.Errorf("Expected the absent optional to be nil, got %v", got[idWithout])
	}
}

func TestQuery_Without(t *testing.T) {
	type Comp struct{ a int }
	type Marker struct{}

	ecs := MakeEcs()
	idPlain := ecs.addEntity(Comp{a: 1})
	ecs.addEntity(Comp{a: 2}, Marker{})

	query := Query1[Comp]{ecs: &ecs}.Without(Marker{})

	got := make(map[EntityId]struct{})
	query.Map(func(entityId EntityId, c *Comp) bool {
		got[entityId] = struct{}{}
		return true
	})

	if len(got) != 1 {
		t.Errorf("Expected exactly one match, got %v", len(got))
	}
	if _, ok := got[idPlain]; !ok {
		t.Errorf("Expected the unmarked entity to match")
	}
}

func TestQuery_MapEarlyExit(t *testing.T) {
	type Comp struct{ a int }

	ecs := MakeEcs()
	ecs.addEntity(Comp{a: 1})
	ecs.addEntity(Comp{a: 2})
	ecs.addEntity(Comp{a: 3})

	query := Query1[Comp]{ecs: &ecs}

	visits := 0
	query.Map(func(entityId EntityId, c *Comp) bool {
		visits += 1
		return false
	})

	if visits != 1 {
		t.Errorf("Expected the query to stop after the first false, got %v visits", visits)
	}
}
