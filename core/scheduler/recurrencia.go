package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"mintverde/config"
	"mintverde/core/store"
	"mintverde/core/utils"
)

const fechaLayout = "2006-01-02"

// RecurrenceScheduler materializes follow-up occurrences of recurring
// ejecuciones: once the latest occurrence of a series is completed, the
// next one is inserted as Pendiente with its dates advanced by the
// period, until repeticiones_max is reached.
type RecurrenceScheduler struct {
	cfg         config.SchedulerConfig
	ejecuciones store.EjecucionesStore
	logger      *utils.Logger
	cron        *cron.Cron
}

func NewRecurrenceScheduler(cfg config.SchedulerConfig, ejecuciones store.EjecucionesStore, logger *utils.Logger) *RecurrenceScheduler {
	return &RecurrenceScheduler{
		cfg:         cfg,
		ejecuciones: ejecuciones,
		logger:      logger,
	}
}

func (s *RecurrenceScheduler) Start() error {
	if !s.cfg.Enabled {
		return nil
	}
	interval := s.cfg.IntervalSeconds
	if interval <= 0 {
		interval = 300
	}
	s.cron = cron.New()
	spec := fmt.Sprintf("@every %ds", interval)
	if _, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := s.Tick(ctx); err != nil && s.logger != nil {
			s.logger.Errorf("SCHED tick: %v", err)
		}
	}); err != nil {
		return err
	}
	s.cron.Start()
	if s.logger != nil {
		s.logger.Printf("SCHED started interval=%ds", interval)
	}
	return nil
}

func (s *RecurrenceScheduler) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// Tick runs one materialization pass and returns how many occurrences
// were generated.
func (s *RecurrenceScheduler) Tick(ctx context.Context) (int, error) {
	candidates, err := s.ejecuciones.ListRepetibles(ctx, s.cfg.MaxJobsPerTick)
	if err != nil {
		return 0, err
	}
	generated := 0
	for i := range candidates {
		c := &candidates[i]
		if c.RepeticionesMax != nil && c.SerieTotal >= *c.RepeticionesMax {
			continue
		}
		next, err := nextOccurrence(&c.Ejecucion)
		if err != nil {
			if s.logger != nil {
				s.logger.Errorf("SCHED skip ejecucion=%d: %v", c.ID, err)
			}
			continue
		}
		if _, err := s.ejecuciones.Create(ctx, next); err != nil {
			return generated, err
		}
		generated++
	}
	if generated > 0 && s.logger != nil {
		s.logger.Printf("SCHED generated=%d", generated)
	}
	return generated, nil
}

func nextOccurrence(prev *store.Ejecucion) (*store.Ejecucion, error) {
	inicio, err := advanceFecha(prev.FechaInicio, prev.Periodicidad)
	if err != nil {
		return nil, err
	}
	next := &store.Ejecucion{
		IDPrograma:      prev.IDPrograma,
		IDElemento:      prev.IDElemento,
		FechaInicio:     inicio,
		Periodicidad:    prev.Periodicidad,
		RepeticionesMax: prev.RepeticionesMax,
		Estado:          store.EstadoPendiente,
		AsignadoA:       prev.AsignadoA,
		Notas:           prev.Notas,
		DistritoID:      prev.DistritoID,
	}
	if prev.FechaFin != nil && *prev.FechaFin != "" {
		fin, err := advanceFecha(*prev.FechaFin, prev.Periodicidad)
		if err != nil {
			return nil, err
		}
		next.FechaFin = &fin
	}
	return next, nil
}

func advanceFecha(fecha, periodicidad string) (string, error) {
	t, err := time.Parse(fechaLayout, fecha)
	if err != nil {
		return "", fmt.Errorf("fecha %q: %w", fecha, err)
	}
	switch periodicidad {
	case "Diaria":
		t = t.AddDate(0, 0, 1)
	case "Semanal":
		t = t.AddDate(0, 0, 7)
	case "Quincenal":
		t = t.AddDate(0, 0, 14)
	case "Mensual":
		t = t.AddDate(0, 1, 0)
	case "Anual":
		t = t.AddDate(1, 0, 0)
	default:
		return "", fmt.Errorf("periodicidad %q no repetible", periodicidad)
	}
	return t.Format(fechaLayout), nil
}
