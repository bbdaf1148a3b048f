package notify

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"github.com/jhoicas/salon-pos/internal/domain/entity"
)

// Messenger envío de mensajes FCM; *messaging.Client lo implementa.
type Messenger interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// PushChannel publica cada aviso en un topic de Firebase Cloud Messaging al que se suscribe la app del administrador.
type PushChannel struct {
	client Messenger
	topic  string
}

// NewPushChannel construye el canal.
func NewPushChannel(client Messenger, topic string) *PushChannel {
	return &PushChannel{client: client, topic: topic}
}

// NewMessagingClient inicializa Firebase y devuelve el cliente de mensajería.
func NewMessagingClient(ctx context.Context, projectID, credentials string) (*messaging.Client, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, firebaseOptions(credentials)...)
	if err != nil {
		return nil, fmt.Errorf("firebase: init: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: messaging: %w", err)
	}
	return client, nil
}

func (c *PushChannel) Name() string { return "push" }

func (c *PushChannel) Deliver(ctx context.Context, n entity.Notification) error {
	if _, err := c.client.Send(ctx, c.message(n)); err != nil {
		return fmt.Errorf("push: topic %s: %w", c.topic, err)
	}
	return nil
}

func (c *PushChannel) message(n entity.Notification) *messaging.Message {
	data := map[string]string{
		"notification_id": n.ID,
		"type":            string(n.Type),
		"employee":        n.EmployeeName,
		"date":            n.Date.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	if n.Sale != nil {
		data["sale_id"] = n.Sale.SaleID
		data["amount"] = n.Sale.Amount.String()
	}
	return &messaging.Message{
		Topic: c.topic,
		Notification: &messaging.Notification{
			Title: subject(n),
			Body:  n.Text,
		},
		Data: data,
	}
}

// firebaseOptions acepta ruta a archivo, JSON inline o JSON en base64.
func firebaseOptions(cred string) []option.ClientOption {
	if cred == "" {
		return nil
	}
	if strings.HasPrefix(strings.TrimSpace(cred), "{") {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(cred))}
	}
	if decoded, err := base64.StdEncoding.DecodeString(cred); err == nil && strings.HasPrefix(strings.TrimSpace(string(decoded)), "{") {
		return []option.ClientOption{option.WithCredentialsJSON(decoded)}
	}
	return []option.ClientOption{option.WithCredentialsFile(cred)}
}
