package audit

// EventType classifies audit entries
type EventType string

const (
	EventNeedCreated        EventType = "NeedCreated"
	EventNeedUpdated        EventType = "NeedUpdated"
	EventNeedFulfilled      EventType = "NeedFulfilled"
	EventSupplyCreated      EventType = "SupplyCreated"
	EventSupplyUpdated      EventType = "SupplyUpdated"
	EventSupplyDepleted     EventType = "SupplyDepleted"
	EventMatchMade          EventType = "MatchMade"
	EventMatchFailed        EventType = "MatchFailed"
	EventShipmentCreated    EventType = "ShipmentCreated"
	EventShipmentDispatched EventType = "ShipmentDispatched"
	EventShipmentDelivered  EventType = "ShipmentDelivered"
	EventShipmentCancelled  EventType = "ShipmentCancelled"
	EventPanicModeTriggered EventType = "PanicModeTriggered"
	EventSystemAlert        EventType = "SystemAlert"
	EventUserAction         EventType = "UserAction"
)

// IsValid reports whether the event type is one of the defined kinds
func (e EventType) IsValid() bool {
	switch e {
	case EventNeedCreated, EventNeedUpdated, EventNeedFulfilled,
		EventSupplyCreated, EventSupplyUpdated, EventSupplyDepleted,
		EventMatchMade, EventMatchFailed,
		EventShipmentCreated, EventShipmentDispatched, EventShipmentDelivered, EventShipmentCancelled,
		EventPanicModeTriggered, EventSystemAlert, EventUserAction:
		return true
	}
	return false
}
