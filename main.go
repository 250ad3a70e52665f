// main.go
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/LilVoxy/coursework_dwh/api"
	"github.com/LilVoxy/coursework_dwh/config"
)

// RunOnce выполняет один проход конвейера и завершается
func RunOnce(etlConfig config.ETLConfig) {
	runner, err := NewETLRunner(etlConfig)
	if err != nil {
		log.Fatalf("Ошибка при создании ETL Runner: %v", err)
	}
	defer runner.Close()

	if err := runner.ExecuteETL(); err != nil {
		log.Fatalf("Ошибка при выполнении ETL: %v", err)
	}
}

// RunScheduled выполняет конвейер по расписанию до сигнала завершения
func RunScheduled(etlConfig config.ETLConfig) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Настраиваем обработку сигналов завершения
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-signalCh
		log.Println("Получен сигнал завершения. Останавливаем ETL Runner...")
		cancel()
	}()

	runner, err := NewETLRunner(etlConfig)
	if err != nil {
		log.Fatalf("Ошибка при создании ETL Runner: %v", err)
	}
	defer runner.Close()

	runner.StartScheduler(ctx)
}

// RunVerify выполняет конвейер обеими стратегиями и сверяет результаты.
// Расхождение завершает процесс с ненулевым кодом
func RunVerify(etlConfig config.ETLConfig) {
	runner, err := NewETLRunner(etlConfig)
	if err != nil {
		log.Fatalf("Ошибка при создании ETL Runner: %v", err)
	}
	defer runner.Close()

	report, err := runner.ExecuteVerify()
	if err != nil {
		log.Fatalf("Ошибка при выполнении verify: %v", err)
	}

	if !report.Match {
		runner.Close()
		log.Printf("Сверка обнаружила %d расхождений между %s и %s",
			len(report.Discrepancies), report.PrimaryStrategy, report.AlternateStrategy)
		os.Exit(1)
	}

	log.Println("Сверка подтвердила эквивалентность стратегий")
}

// RunServe поднимает операционный HTTP API и выполняет запуски по запросу
func RunServe(etlConfig config.ETLConfig) {
	runner, err := NewETLRunner(etlConfig)
	if err != nil {
		log.Fatalf("Ошибка при создании ETL Runner: %v", err)
	}
	defer runner.Close()

	apiServer := api.NewServer(
		etlConfig.HTTPAddr,
		runner.Logger(),
		runner,
		runner.RunLogRepository(),
		runner.ReconciliationRepository(),
	)
	server := apiServer.NewHTTPServer()

	// Запускаем сервер в отдельной горутине
	go func() {
		log.Printf("Операционный API запущен на http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Ошибка запуска сервера: %v", err)
		}
	}()

	// Канал для сигналов завершения
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Получен сигнал завершения, останавливаем сервер...")

	if err := server.Shutdown(context.Background()); err != nil {
		log.Printf("Ошибка при остановке сервера: %v", err)
	}

	log.Println("Сервер остановлен")
}

func main() {
	// Параметры командной строки
	modePtr := flag.String("mode", "once", "Режим работы: once, scheduled, verify или serve")
	strategyPtr := flag.String("strategy", "", "Стратегия упорядочивания: clean-first или load-first")
	httpPtr := flag.String("http", "", "Адрес операционного API (только для режима serve)")

	flag.Parse()

	etlConfig := config.GetConfig()
	if *strategyPtr != "" {
		etlConfig.Strategy = *strategyPtr
	}
	if *httpPtr != "" {
		etlConfig.HTTPAddr = *httpPtr
	}

	log.Println("Запуск ETL Runner в режиме:", *modePtr)

	switch *modePtr {
	case "once":
		RunOnce(etlConfig)
	case "scheduled":
		RunScheduled(etlConfig)
	case "verify":
		RunVerify(etlConfig)
	case "serve":
		RunServe(etlConfig)
	default:
		log.Println("Неизвестный режим работы:", *modePtr)
		log.Println("Доступные режимы: once, scheduled, verify, serve")
		os.Exit(1)
	}

	log.Println("ETL Runner завершил работу")
}
