package schedule

import (
	"github.com/kbukum/sporeplan/errors"
)

type mark uint8

const (
	unvisited mark = iota
	inProgress
	done
)

// frame is one step on the explicit traversal stack. next indexes the
// dependency to visit when the frame is resumed.
type frame struct {
	step *Step
	next int
}

// TopologicalOrder orders steps so that every step follows all of its known
// prerequisites.
//
// Steps are visited in input order and each step's dependencies in listed
// order, so unrelated steps keep their relative input order and the result is
// deterministic. Shared prerequisites are emitted once. Unknown dependency
// keys are skipped. When a key is defined more than once the last definition
// is used and the key is emitted once.
//
// A dependency cycle returns a CYCLE_DETECTED error whose "cycle" detail
// lists the keys along the cycle.
func TopologicalOrder(steps []Step) ([]Step, error) {
	byKey := make(map[string]*Step, len(steps))
	for i := range steps {
		byKey[steps[i].Key] = &steps[i]
	}

	marks := make(map[string]mark, len(byKey))
	out := make([]Step, 0, len(byKey))
	var stack []frame

	for i := range steps {
		root := byKey[steps[i].Key]
		if marks[root.Key] != unvisited {
			continue
		}

		marks[root.Key] = inProgress
		stack = append(stack[:0], frame{step: root})

		for len(stack) > 0 {
			top := &stack[len(stack)-1]

			if top.next == len(top.step.DependsOn) {
				marks[top.step.Key] = done
				out = append(out, *top.step)
				stack = stack[:len(stack)-1]
				continue
			}

			depKey := top.step.DependsOn[top.next]
			top.next++

			dep, ok := byKey[depKey]
			if !ok {
				continue
			}
			switch marks[depKey] {
			case done:
				continue
			case inProgress:
				return nil, errors.CycleDetected(cyclePath(stack, depKey))
			}

			marks[depKey] = inProgress
			stack = append(stack, frame{step: dep})
		}
	}

	return out, nil
}

// cyclePath extracts the keys from the first frame holding key to the top of
// the stack, closed with key again.
func cyclePath(stack []frame, key string) []string {
	start := 0
	for i, f := range stack {
		if f.step.Key == key {
			start = i
			break
		}
	}
	path := make([]string, 0, len(stack)-start+1)
	for _, f := range stack[start:] {
		path = append(path, f.step.Key)
	}
	return append(path, key)
}
