package vantage

import (
	"reflect"
)

// Queries iterate all archetypes containing the requested component set.
// Components listed via the optionals argument of Map may be absent, in
// which case the callback receives nil for them. Without() filters out
// archetypes carrying a component type, which is how marker components
// are excluded without scanning per entity.
type Query1[A any] struct {
	ecs      *Ecs
	excluded []any
}
type Query2[A, B any] struct {
	ecs      *Ecs
	excluded []any
}
type Query3[A, B, C any] struct {
	ecs      *Ecs
	excluded []any
}
type Query4[A, B, C, D any] struct {
	ecs      *Ecs
	excluded []any
}

func MakeQuery1[A any](cmd *Commands) Query1[A]             { return Query1[A]{ecs: cmd.app.ecs} }
func MakeQuery2[A, B any](cmd *Commands) Query2[A, B]       { return Query2[A, B]{ecs: cmd.app.ecs} }
func MakeQuery3[A, B, C any](cmd *Commands) Query3[A, B, C] { return Query3[A, B, C]{ecs: cmd.app.ecs} }
func MakeQuery4[A, B, C, D any](cmd *Commands) Query4[A, B, C, D] {
	return Query4[A, B, C, D]{ecs: cmd.app.ecs}
}

func (q Query1[A]) Without(components ...any) Query1[A] {
	q.excluded = append(q.excluded, components...)
	return q
}

func (q Query2[A, B]) Without(components ...any) Query2[A, B] {
	q.excluded = append(q.excluded, components...)
	return q
}

func (q Query3[A, B, C]) Without(components ...any) Query3[A, B, C] {
	q.excluded = append(q.excluded, components...)
	return q
}

func (q Query4[A, B, C, D]) Without(components ...any) Query4[A, B, C, D] {
	q.excluded = append(q.excluded, components...)
	return q
}

func (q Query1[A]) Map(m func(EntityId, *A) bool, optionals ...any) {
	id1 := identifyComponents1[A](q.ecs)
	opt := identifyComponentSet(q.ecs, optionals...)
	excl := identifyComponentSet(q.ecs, q.excluded...)

	for _, arch := range q.ecs.archetypes {
		if archetypeExcluded(arch, excl) {
			continue
		}

		comps1, skip := archetypeColumn[A](arch, id1, opt)
		if skip {
			continue
		}

		for entityId, row := range arch.entities {
			if !m(entityId, columnPtr(comps1, row)) {
				return
			}
		}
	}
}

func (q Query2[A, B]) Map(m func(EntityId, *A, *B) bool, optionals ...any) {
	id1, id2 := identifyComponents2[A, B](q.ecs)
	opt := identifyComponentSet(q.ecs, optionals...)
	excl := identifyComponentSet(q.ecs, q.excluded...)

	for _, arch := range q.ecs.archetypes {
		if archetypeExcluded(arch, excl) {
			continue
		}

		comps1, skip := archetypeColumn[A](arch, id1, opt)
		if skip {
			continue
		}
		comps2, skip := archetypeColumn[B](arch, id2, opt)
		if skip {
			continue
		}

		for entityId, row := range arch.entities {
			if !m(entityId, columnPtr(comps1, row), columnPtr(comps2, row)) {
				return
			}
		}
	}
}

func (q Query3[A, B, C]) Map(m func(EntityId, *A, *B, *C) bool, optionals ...any) {
	id1, id2, id3 := identifyComponents3[A, B, C](q.ecs)
	opt := identifyComponentSet(q.ecs, optionals...)
	excl := identifyComponentSet(q.ecs, q.excluded...)

	for _, arch := range q.ecs.archetypes {
		if archetypeExcluded(arch, excl) {
			continue
		}

		comps1, skip := archetypeColumn[A](arch, id1, opt)
		if skip {
			continue
		}
		comps2, skip := archetypeColumn[B](arch, id2, opt)
		if skip {
			continue
		}
		comps3, skip := archetypeColumn[C](arch, id3, opt)
		if skip {
			continue
		}

		for entityId, row := range arch.entities {
			if !m(entityId, columnPtr(comps1, row), columnPtr(comps2, row), columnPtr(comps3, row)) {
				return
			}
		}
	}
}

func (q Query4[A, B, C, D]) Map(m func(EntityId, *A, *B, *C, *D) bool, optionals ...any) {
	id1, id2, id3, id4 := identifyComponents4[A, B, C, D](q.ecs)
	opt := identifyComponentSet(q.ecs, optionals...)
	excl := identifyComponentSet(q.ecs, q.excluded...)

	for _, arch := range q.ecs.archetypes {
		if archetypeExcluded(arch, excl) {
			continue
		}

		comps1, skip := archetypeColumn[A](arch, id1, opt)
		if skip {
			continue
		}
		comps2, skip := archetypeColumn[B](arch, id2, opt)
		if skip {
			continue
		}
		comps3, skip := archetypeColumn[C](arch, id3, opt)
		if skip {
			continue
		}
		comps4, skip := archetypeColumn[D](arch, id4, opt)
		if skip {
			continue
		}

		for entityId, row := range arch.entities {
			if !m(entityId, columnPtr(comps1, row), columnPtr(comps2, row), columnPtr(comps3, row), columnPtr(comps4, row)) {
				return
			}
		}
	}
}

// archetypeColumn resolves one required-or-optional component column.
// A nil column with skip=false means the component was optional and the
// archetype does not carry it.
func archetypeColumn[T any](arch *archetype, id componentId, opt set[componentId]) ([]T, bool) {
	if compData, ok := arch.columns[id]; ok {
		return compData.([]T), false
	}
	if _, ok := opt[id]; ok {
		return nil, false
	}
	return nil, true
}

func columnPtr[T any](col []T, r row) *T {
	if col == nil {
		return nil
	}
	return &col[r]
}

func archetypeExcluded(arch *archetype, excl set[componentId]) bool {
	for _, id := range arch.key {
		if _, ok := excl[id]; ok {
			return true
		}
	}
	return false
}

func identifyComponentSet(ecs *Ecs, components ...any) set[componentId] {
	res := make(set[componentId])
	for _, c := range components {
		res[ecs.getComponentId(componentStructType(c))] = struct{}{}
	}
	return res
}

func identifyComponents1[A any](ecs *Ecs) componentId {
	var a A
	return ecs.getComponentId(reflect.TypeOf(a))
}

func identifyComponents2[A, B any](ecs *Ecs) (componentId, componentId) {
	var a A
	var b B
	return ecs.getComponentId(reflect.TypeOf(a)), ecs.getComponentId(reflect.TypeOf(b))
}

func identifyComponents3[A, B, C any](ecs *Ecs) (componentId, componentId, componentId) {
	var a A
	var b B
	var c C
	return ecs.getComponentId(reflect.TypeOf(a)), ecs.getComponentId(reflect.TypeOf(b)), ecs.getComponentId(reflect.TypeOf(c))
}

func identifyComponents4[A, B, C, D any](ecs *Ecs) (componentId, componentId, componentId, componentId) {
	var a A
	var b B
	var c C
	var d D
	return ecs.getComponentId(reflect.TypeOf(a)), ecs.getComponentId(reflect.TypeOf(b)), ecs.getComponentId(reflect.TypeOf(c)), ecs.getComponentId(reflect.TypeOf(d))
}
