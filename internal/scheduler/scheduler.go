// Package scheduler 提供后台定时任务调度
package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// taskTimeout 单次任务执行的超时上限
const taskTimeout = 5 * time.Minute

// Task 定时任务
type Task struct {
	Name     string
	Interval time.Duration
	Handler  func(ctx context.Context) error
}

// Scheduler 定时任务调度器
// 每个任务独立 goroutine 跑 ticker,Stop 时等待全部退出
type Scheduler struct {
	tasks  []*Task
	logger *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler 创建调度器
func NewScheduler(logger *zap.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		tasks:  make([]*Task, 0),
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddTask 注册任务
func (s *Scheduler) AddTask(name string, interval time.Duration, handler func(ctx context.Context) error) {
	s.tasks = append(s.tasks, &Task{
		Name:     name,
		Interval: interval,
		Handler:  handler,
	})
}

// Start 启动所有任务
func (s *Scheduler) Start() {
	s.logger.Info("调度器启动", zap.Int("tasks", len(s.tasks)))

	for _, task := range s.tasks {
		s.wg.Add(1)
		go s.runTask(task)
	}
}

// Stop 停止调度器并等待任务退出
func (s *Scheduler) Stop() {
	s.logger.Info("调度器停止中")
	s.cancel()
	s.wg.Wait()
	s.logger.Info("调度器已停止")
}

func (s *Scheduler) runTask(task *Task) {
	defer s.wg.Done()

	ticker := time.NewTicker(task.Interval)
	defer ticker.Stop()

	// 启动时先跑一次,避免等满一个周期才生效
	s.executeTask(task)

	for {
		select {
		case <-s.ctx.Done():
			s.logger.Info("任务退出", zap.String("task", task.Name))
			return
		case <-ticker.C:
			s.executeTask(task)
		}
	}
}

func (s *Scheduler) executeTask(task *Task) {
	ctx, cancel := context.WithTimeout(s.ctx, taskTimeout)
	defer cancel()

	start := time.Now()
	if err := task.Handler(ctx); err != nil {
		s.logger.Error("任务执行失败",
			zap.String("task", task.Name),
			zap.Error(err))
		return
	}
	s.logger.Debug("任务执行完成",
		zap.String("task", task.Name),
		zap.Duration("elapsed", time.Since(start)))
}
