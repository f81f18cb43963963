package queues

import "github.com/vkngwrapper/bootstrap/driver"

const QueuePriority = float32(1.0)

// Ordinals is the index of each role's queue within its family.
type Ordinals struct {
	Graphics int
	Present  int
}

// Plan builds one queue create record per distinct family in the assignment,
// in role order (graphics first). A family backing both roles gets two
// queues, unless it only exposes one, in which case both roles share it.
func Plan(a Assignment, families []driver.QueueFamilyProperties) ([]driver.QueueCreateInfo, Ordinals) {
	var infos []driver.QueueCreateInfo
	slots := make(map[int]int)

	take := func(family int) int {
		slot, ok := slots[family]
		if !ok {
			slot = len(infos)
			slots[family] = slot
			infos = append(infos, driver.QueueCreateInfo{FamilyIndex: family})
		}

		info := &infos[slot]
		if info.Count() < familyCapacity(families, family) {
			info.Priorities = append(info.Priorities, QueuePriority)
		}
		return info.Count() - 1
	}

	var ordinals Ordinals
	ordinals.Graphics = take(a.GraphicsFamily)
	ordinals.Present = take(a.PresentFamily)

	return infos, ordinals
}

func familyCapacity(families []driver.QueueFamilyProperties, family int) int {
	if family < 0 || family >= len(families) || families[family].QueueCount <= 0 {
		// unknown capacity, one queue per role
		return 2
	}
	return families[family].QueueCount
}
