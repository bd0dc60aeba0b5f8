package entities

// AggregateCounts - производное представление для дашборда. Все значения
// перечислений присутствуют всегда, в том числе с нулем.
type AggregateCounts struct {
	Total      int64              `json:"total"`
	ByStatus   map[Status]int64   `json:"byStatus"`
	ByCategory map[Category]int64 `json:"byCategory"`
}

func NewAggregateCounts() AggregateCounts {
	counts := AggregateCounts{
		ByStatus:   make(map[Status]int64, len(AllStatuses)),
		ByCategory: make(map[Category]int64, len(AllCategories)),
	}
	for _, s := range AllStatuses {
		counts.ByStatus[s] = 0
	}
	for _, c := range AllCategories {
		counts.ByCategory[c] = 0
	}
	return counts
}

// CountEquipment считает агрегаты перебором коллекции в памяти.
func CountEquipment(items []Equipment) AggregateCounts {
	counts := NewAggregateCounts()
	for _, item := range items {
		counts.Total++
		counts.ByStatus[StatusFromStore(string(item.Status))]++
		counts.ByCategory[CategoryFromStore(string(item.Category))]++
	}
	return counts
}

func (a AggregateCounts) StatusSum() int64 {
	var sum int64
	for _, v := range a.ByStatus {
		sum += v
	}
	return sum
}

func (a AggregateCounts) CategorySum() int64 {
	var sum int64
	for _, v := range a.ByCategory {
		sum += v
	}
	return sum
}

// Consistent - суммы по статусам и категориям совпадают с общим числом.
func (a AggregateCounts) Consistent() bool {
	return a.StatusSum() == a.Total && a.CategorySum() == a.Total
}
