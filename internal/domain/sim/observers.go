package sim

type Observer func(*State)

// Observers is a subscription list. It must be used from the goroutine that
// owns the Game.
type Observers struct {
	next int
	subs []subscription
}

type subscription struct {
	id int
	fn Observer
}

func (o *Observers) Subscribe(fn Observer) func() {
	o.next++
	id := o.next
	o.subs = append(o.subs, subscription{id: id, fn: fn})
	return func() {
		for i, s := range o.subs {
			if s.id == id {
				o.subs = append(o.subs[:i:i], o.subs[i+1:]...)
				return
			}
		}
	}
}

func (o *Observers) Notify(s *State) {
	for _, sub := range o.subs {
		sub.fn(s)
	}
}

func (o *Observers) Len() int { return len(o.subs) }
