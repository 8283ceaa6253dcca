package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/ibvida-dev/escala-manager/backend/internal/config"
	"github.com/ibvida-dev/escala-manager/backend/internal/repository"
	"github.com/ibvida-dev/escala-manager/backend/internal/seed"
	"github.com/ibvida-dev/escala-manager/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var month string

	flag.IntVar(&op, "op", 0, "operação a executar (1: inserir pessoas aleatórias, 2: criar os ministérios e distribuir membros, 3: criar os dias de culto de um mês, 4: sortear declarações de disponibilidade de um mês)")
	flag.IntVar(&n, "n", 10, "quantidade de registros a inserir")
	flag.StringVar(&month, "month", time.Now().Format("2006-01"), "mês alvo no formato YYYY-MM")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// carregar a configuração
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("não foi possível carregar a configuração", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// criar o pool de conexões
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("não foi possível criar o pool de conexões", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open só cria o objeto do pool; o ping explícito valida a conexão
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("não foi possível conectar ao banco de dados", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("nenhuma operação informada")
	case 1:
		if n <= 0 {
			slog.Error("informe uma quantidade válida de pessoas")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				person := utils.GenerateRandomPerson(cfg.Email.UserDomain)
				if err := repo.CreatePerson(person); err != nil {
					slog.Error("não foi possível inserir a pessoa", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("pessoas inseridas com sucesso", slog.Int("count", n-cnt))
		}
	case 2:
		people, err := repo.GetAllPeople()
		if err != nil {
			slog.Error("não foi possível obter as pessoas cadastradas", slog.String("error", err.Error()))
			return
		}

		seed.SeedMinistries(repo, people)
	case 3:
		if err := utils.ValidateMonth(month); err != nil {
			slog.Error("mês inválido", slog.String("month", month))
			return
		}

		seed.SeedServiceDays(repo, month)
	case 4:
		if err := utils.ValidateMonth(month); err != nil {
			slog.Error("mês inválido", slog.String("month", month))
			return
		}

		people, err := repo.GetAllPeople()
		if err != nil {
			slog.Error("não foi possível obter as pessoas cadastradas", slog.String("error", err.Error()))
			return
		}

		days, err := repo.GetServiceDaysByMonth(month)
		if err != nil {
			slog.Error("não foi possível obter os dias de culto do mês", slog.String("error", err.Error()))
			return
		}

		seed.SeedAvailability(repo, people, days)
	default:
		slog.Error("operação inválida")
	}
}
