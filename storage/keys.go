package storage

import "fmt"

const DefaultNamespace = "rms"

// Keys builds the namespaced key strings shared by every backend.
type Keys struct {
	Namespace string
}

func NewKeys(namespace string) Keys {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return Keys{Namespace: namespace}
}

func (k Keys) DefaultLayout(restaurantID, floorID string) string {
	return fmt.Sprintf("%s:table-layout:default:%s:%s", k.Namespace, restaurantID, floorID)
}

func (k Keys) SlotLayout(restaurantID, floorID, date, time string) string {
	return fmt.Sprintf("%s:table-layout:slot:%s:%s:%s:%s", k.Namespace, restaurantID, floorID, date, time)
}

func (k Keys) Reservations(restaurantID string) string {
	return fmt.Sprintf("%s:reservations:%s", k.Namespace, restaurantID)
}
