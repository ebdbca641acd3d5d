package payment

// Method is how an expense was paid. Each method feeds its own daily summary bucket.
type Method string

const (
	Cash        Method = "Cash"
	OrangeMoney Method = "OrangeMoney"
	Card        Method = "Card"
)

var Methods = []Method{Cash, OrangeMoney, Card}

// Names returns the accepted literals, for validation messages and the API document.
func Names() []string {
	names := make([]string, len(Methods))
	for i, m := range Methods {
		names[i] = string(m)
	}
	return names
}

// Buckets is an amount split across the three daily summary columns.
type Buckets struct {
	Cash   int64
	Orange int64
	Card   int64
}

// Split puts the whole amount in the bucket of m and zero in the others.
func Split(m Method, amount int64) Buckets {
	switch m {
	case Cash:
		return Buckets{Cash: amount}
	case OrangeMoney:
		return Buckets{Orange: amount}
	case Card:
		return Buckets{Card: amount}
	}
	return Buckets{}
}

func (b Buckets) Total() int64 {
	return b.Cash + b.Orange + b.Card
}
