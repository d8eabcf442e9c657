package messaging

import "bizadmin/internal/domain/admin"

// AdminName is the admin side of every conversation. Messages are addressed
// by (sender, recipient) name pairs; a chat is the derived view of the pair
// (AdminName, employee).
const AdminName = "Admin"

type Message struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Timestamp string `json:"timestamp"`
	IsRead    bool   `json:"isRead"`
}

// Chat summarizes one employee's conversation with the admin. Its id is the
// counterpart employee's id. Online is presentational only; there is no real
// presence behind it.
type Chat struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Role        admin.Role `json:"role"`
	LastMessage string     `json:"lastMessage"`
	Timestamp   string     `json:"timestamp"`
	Unread      int        `json:"unread"`
	Online      bool       `json:"online"`
}
