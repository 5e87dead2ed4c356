package game

// Trigger asks the dialogue to open a beat after a pickup.
type Trigger struct {
	Coin    int
	Beat    int
	Closing bool
}

// Progression tracks which coins are collected and the score they earned.
type Progression struct {
	coins     []Vec
	collected []bool
	count     int
	score     int
	value     int
	radius    float64
}

// NewProgression returns a tracker with every coin uncollected.
func NewProgression(coins []Vec, radius float64, value int) *Progression {
	return &Progression{
		coins:     coins,
		collected: make([]bool, len(coins)),
		value:     value,
		radius:    radius,
	}
}

// Check collects every uncollected coin strictly within the pickup radius of
// any of points. Callers pass the pre-tick and post-tick positions so a fast
// step cannot skip a coin. Each coin is collected at most once.
func (p *Progression) Check(points ...Vec) []Trigger {
	var triggers []Trigger
	for _, pt := range points {
		for i, coin := range p.coins {
			if p.collected[i] || pt.Dist(coin) >= p.radius {
				continue
			}
			p.collected[i] = true
			p.count++
			p.score += p.value
			triggers = append(triggers, Trigger{
				Coin:    i,
				Beat:    p.count - 1,
				Closing: p.count == len(p.coins),
			})
		}
	}
	return triggers
}

// IsCollected reports whether coin i has been picked up.
func (p *Progression) IsCollected(i int) bool {
	return i >= 0 && i < len(p.collected) && p.collected[i]
}

// Collected returns the number of coins picked up.
func (p *Progression) Collected() int { return p.count }

// Total returns the number of coins in the level.
func (p *Progression) Total() int { return len(p.coins) }

// Score returns the points earned.
func (p *Progression) Score() int { return p.score }

// Complete reports whether every coin is collected.
func (p *Progression) Complete() bool { return p.count == len(p.coins) }

// Reset marks every coin uncollected and zeroes the score.
func (p *Progression) Reset() {
	clear(p.collected)
	p.count = 0
	p.score = 0
}
