package domain

// CityTarget is an immutable launch-market definition. The slice order in
// which targets are configured is also the order the matcher evaluates them,
// so declaration order is part of the contract.
type CityTarget struct {
	Name      string
	Aliases   []string
	TargetMAU int
	Phase     int
}
