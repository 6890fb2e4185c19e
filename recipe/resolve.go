package recipe

import (
	"fmt"

	"github.com/kbukum/sporeplan/errors"
)

// Resolve flattens r's includes into a single recipe. Included steps come
// first, in include order; a step defined by the including recipe replaces an
// included step with the same key in place. Each included recipe contributes
// once even when reached through several paths. Circular includes are a
// CYCLE_DETECTED error.
func Resolve(r *Recipe, loader Loader) (*Recipe, error) {
	stack := make(map[string]bool)    // current include path (cycle detection)
	resolved := make(map[string]bool) // already merged (dedup)
	var path []string

	out := &Recipe{
		Name:         r.Name,
		Version:      r.Version,
		Description:  r.Description,
		DefaultScale: r.DefaultScale,
	}
	if err := resolveInto(out, r, loader, stack, resolved, &path); err != nil {
		return nil, err
	}
	return out, nil
}

func resolveInto(out, r *Recipe, loader Loader, stack, resolved map[string]bool, path *[]string) error {
	if stack[r.Name] {
		cycle := append(append([]string{}, (*path)[indexOf(*path, r.Name):]...), r.Name)
		return errors.CycleDetected(cycle).WithDetail("kind", "include")
	}
	stack[r.Name] = true
	*path = append(*path, r.Name)
	defer func() {
		delete(stack, r.Name)
		*path = (*path)[:len(*path)-1]
	}()

	for _, name := range r.Includes {
		if resolved[name] {
			continue
		}
		if loader == nil {
			return errors.InvalidInput("includes", fmt.Sprintf("recipe %q includes %q but no loader is configured", r.Name, name))
		}

		sub, err := loader.Load(name)
		if err != nil {
			if appErr, ok := errors.AsAppError(err); ok {
				return appErr.WithDetail("included_by", r.Name)
			}
			return errors.Internal(err)
		}
		if err := resolveInto(out, sub, loader, stack, resolved, path); err != nil {
			return err
		}
	}

	mergeMedia(out, r.Media)
	for _, s := range r.Steps {
		if i := stepIndex(out.Steps, s.Key); i >= 0 {
			out.Steps[i] = s
			continue
		}
		out.Steps = append(out.Steps, s)
	}

	resolved[r.Name] = true
	return nil
}

func mergeMedia(out *Recipe, media map[string]string) {
	if len(media) == 0 {
		return
	}
	if out.Media == nil {
		out.Media = make(map[string]string, len(media))
	}
	for k, v := range media {
		out.Media[k] = v
	}
}

func stepIndex(steps []StepDef, key string) int {
	for i, s := range steps {
		if s.Key == key {
			return i
		}
	}
	return -1
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return 0
}
