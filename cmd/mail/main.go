package main

import (
	"context"
	"encoding/json"
	"html/template"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wneessen/go-mail"

	"github.com/ibvida-dev/escala-manager/backend/internal/config"
	"github.com/ibvida-dev/escala-manager/backend/internal/domain"
)

func main() {
	/**********************************************
	 * criar o logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	/**********************************************
	 * carregar a configuração
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("não foi possível carregar a configuração", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * criar o cliente de email
	 **********************************************/
	client, err := mail.NewClient(cfg.Email.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.Email.SMTP.Port),
		mail.WithUsername(cfg.Email.SMTP.Username),
		mail.WithPassword(cfg.Email.SMTP.Password),
	)
	if err != nil {
		logger.Error("não foi possível criar o cliente de email", slog.String("error", err.Error()))
		return
	}
	defer client.Close()

	// validar a conexão com o servidor de email antes de consumir a fila
	clientDialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
	defer cancel()
	if err := client.DialWithContext(clientDialCtx); err != nil {
		logger.Error("não foi possível conectar ao servidor de email", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * conectar ao RabbitMQ
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("não foi possível conectar ao RabbitMQ", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("não foi possível abrir o canal", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		"email_queue", // nome da fila
		true,          // durável
		false,         // não apagar automaticamente, mesmo sem consumidores
		false,         // não exclusiva
		false,         // esperar a confirmação do RabbitMQ
		nil,           // argumentos extras
	)
	if err != nil {
		logger.Error("não foi possível declarar a fila", slog.String("error", err.Error()))
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	msgs, err := ch.Consume(
		q.Name, // fila
		"",     // identificador do consumidor atribuído pelo RabbitMQ
		false,  // sem ack automático
		false,  // não exclusiva
		false,  // no-local não é suportado pelo RabbitMQ
		false,  // esperar a resposta do RabbitMQ
		nil,    // argumentos extras
	)
	if err != nil {
		logger.Error("não foi possível consumir a fila", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				logger.Info("mensagem recebida", slog.String("message", string(msg.Body)))
				mailMessage := domain.MailMessage{}
				if err := json.Unmarshal(msg.Body, &mailMessage); err != nil {
					logger.Error("falha ao desserializar a mensagem", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				m := mail.NewMsg()
				if err := m.From(cfg.Email.SMTP.Username); err != nil {
					logger.Error("não foi possível definir o remetente", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}
				if err := m.To(mailMessage.To); err != nil {
					logger.Error("não foi possível definir o destinatário", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				switch mailMessage.Type {
				case "schedule_published":
					tmpl, err := template.ParseFiles("./templates/schedule_published_email.html")
					if err != nil {
						logger.Error("não foi possível carregar o template", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					if err := m.SetBodyHTMLTemplate(tmpl, mailMessage.Data); err != nil {
						logger.Error("não foi possível montar o corpo do email", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					m.Subject("Escala Manager - Escala publicada")
				case "assignment_replaced":
					tmpl, err := template.ParseFiles("./templates/assignment_replaced_email.html")
					if err != nil {
						logger.Error("não foi possível carregar o template", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					if err := m.SetBodyHTMLTemplate(tmpl, mailMessage.Data); err != nil {
						logger.Error("não foi possível montar o corpo do email", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					m.Subject("Escala Manager - Você foi escalado como substituto")
				default:
					logger.Error("tipo de email não suportado", slog.String("type", mailMessage.Type))
					_ = msg.Nack(false, false)
					continue
				}

				if err := client.DialAndSend(m); err != nil {
					logger.Error("falha ao enviar o email", slog.String("error", err.Error()))
					_ = msg.Nack(false, true) // devolve a mensagem para a fila
					continue
				}

				_ = msg.Ack(false)
			}
		}
	}()

	logger.Info("aguardando mensagens... (CTRL+C para sair)")
	<-sigChan

	slog.Info("encerrando o mail worker...")
	cancel()
	wg.Wait()
	slog.Info("mail worker encerrado com sucesso")
}
