package sim

import (
	"strconv"
	"strings"
)

type podRef struct {
	bay, idx int
}

// frontier lists dormant pods within Chebyshev distance 1 of any infected or
// empty pod. Bays share one coordinate grid, so a compromised cell in any bay
// exposes the neighbouring cells in every bay.
func (s *State) frontier() []podRef {
	var networked [BayWidth][BayHeight]bool
	for _, b := range s.Bays {
		for _, p := range b.Pods {
			if p.Status != PodDormant {
				networked[p.X][p.Y] = true
			}
		}
	}
	near := func(x, y int) bool {
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				nx, ny := x+dx, y+dy
				if nx < 0 || ny < 0 || nx >= BayWidth || ny >= BayHeight {
					continue
				}
				if networked[nx][ny] {
					return true
				}
			}
		}
		return false
	}
	var out []podRef
	for bi, b := range s.Bays {
		for pi, p := range b.Pods {
			if p.Status == PodDormant && near(p.X, p.Y) {
				out = append(out, podRef{bay: bi, idx: pi})
			}
		}
	}
	return out
}

// FindPod resolves a "bay-x-y" pod id.
func (s *State) FindPod(id string) (*Pod, bool) {
	parts := strings.Split(id, "-")
	if len(parts) != 3 {
		return nil, false
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, false
		}
		nums[i] = n
	}
	bay, x, y := nums[0], nums[1], nums[2]
	if bay < 0 || bay >= len(s.Bays) || x < 0 || x >= BayWidth || y < 0 || y >= BayHeight {
		return nil, false
	}
	pods := s.Bays[bay].Pods
	i := podIndex(x, y)
	if i >= len(pods) || pods[i].ID != id {
		return nil, false
	}
	return &pods[i], true
}

func (s *State) firstPodWith(status PodStatus) *Pod {
	for bi := range s.Bays {
		pods := s.Bays[bi].Pods
		for pi := range pods {
			if pods[pi].Status == status {
				return &pods[pi]
			}
		}
	}
	return nil
}
