package shop

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

var validNext = map[Status]map[Status]bool{
	StatusPending:    {StatusProcessing: true, StatusCancelled: true},
	StatusProcessing: {StatusShipped: true, StatusCancelled: true},
	StatusShipped:    {StatusDelivered: true},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

var statusLabels = map[Status]string{
	StatusPending:    "Pendiente",
	StatusProcessing: "Procesando",
	StatusShipped:    "Enviado",
	StatusDelivered:  "Entregado",
	StatusCancelled:  "Cancelado",
}

func (s Status) Valid() bool {
	_, ok := validNext[s]
	return ok
}

// Label is the customer-facing name of the status.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

func (s Status) Terminal() bool { return s.Valid() && len(validNext[s]) == 0 }

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}
