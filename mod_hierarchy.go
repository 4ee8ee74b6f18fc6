package vantage

import (
	"github.com/go-gl/mathgl/mgl32"
)

type HierarchyModule struct{}

func (HierarchyModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(TransformHierarchySystem).
			InStage(PostUpdate).
			RunAlways(),
	)
}

// TransformHierarchySystem propagates local transforms down Parent
// chains into world-space TransformComponents. A spawned scene can be
// arbitrarily deep, so propagation repeats until a pass changes
// nothing (bounded to keep a cyclic Parent link from hanging a tick).
func TransformHierarchySystem(cmd *Commands) {
	// Roots with both components keep the world transform as the
	// source of truth.
	MakeQuery2[LocalTransform, TransformComponent](cmd).Without(Parent{}).Map(
		func(eid EntityId, local *LocalTransform, world *TransformComponent) bool {
			local.Position = world.Position
			local.Rotation = world.Rotation
			local.Scale = world.Scale
			return true
		})

	for pass := 0; pass < 16; pass++ {
		changed := false
		MakeQuery3[LocalTransform, Parent, TransformComponent](cmd).Map(
			func(eid EntityId, local *LocalTransform, parent *Parent, world *TransformComponent) bool {
				parentWorld := findWorldTransform(cmd, parent.Entity)
				if parentWorld == nil {
					return true
				}

				// Propagate componentwise instead of through matrices
				// to preserve scale signs.
				scaledLocalPos := mgl32.Vec3{
					local.Position.X() * parentWorld.Scale.X(),
					local.Position.Y() * parentWorld.Scale.Y(),
					local.Position.Z() * parentWorld.Scale.Z(),
				}
				newPos := parentWorld.Position.Add(parentWorld.Rotation.Rotate(scaledLocalPos))
				newRot := parentWorld.Rotation.Mul(local.Rotation).Normalize()
				newScale := mgl32.Vec3{
					parentWorld.Scale.X() * local.Scale.X(),
					parentWorld.Scale.Y() * local.Scale.Y(),
					parentWorld.Scale.Z() * local.Scale.Z(),
				}

				if newPos != world.Position || newRot != world.Rotation || newScale != world.Scale {
					world.Position = newPos
					world.Rotation = newRot
					world.Scale = newScale
					changed = true
				}
				return true
			})
		if !changed {
			break
		}
	}
}

func findWorldTransform(cmd *Commands, eid EntityId) *TransformComponent {
	for _, c := range cmd.GetAllComponents(eid) {
		if tr, ok := c.(TransformComponent); ok {
			return &tr
		}
	}
	return nil
}
