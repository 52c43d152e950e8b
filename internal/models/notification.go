package models

type WebsocketStatus struct {
	Connected      bool `json:"connected"`
	ConnectedUsers int  `json:"connectedUsers"`
	ActiveRooms    int  `json:"activeRooms,omitempty"`
}

type Notification struct {
	UserID  string         `json:"userId" validate:"required"`
	Title   string         `json:"title" validate:"required,max=120"`
	Message string         `json:"message" validate:"required,max=1000"`
	Type    string         `json:"type,omitempty" validate:"omitempty,oneof=info success warning error"`
	Data    map[string]any `json:"data,omitempty"`
}

type NotificationResult struct {
	Delivered bool `json:"delivered"`
}
