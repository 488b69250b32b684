package systems

import (
	"math"
	"sort"
)

// TimerHandle 标识一个已调度的延迟回调
//
// 句柄携带调度时的代数（generation），Teardown 之后旧句柄全部失效。
type TimerHandle struct {
	id         uint64
	generation uint64
}

type scheduledTask struct {
	id         uint64
	generation uint64
	due        float64
	fn         func()
	cancelled  bool
}

// Scheduler 帧驱动的延迟回调调度器
//
// 所有回调在 Update(dt) 中按到期时间顺序执行，
// 执行时的虚拟时间等于回调的到期时间，因此回调内再次 After() 的延迟
// 不受帧粒度影响（一次大 dt 也能精确推进完整的时间线）。
//
// 每个回调在调度时捕获当前代数；Teardown() 使代数递增，
// 之前调度的回调即使仍在队列中也不会再执行。
type Scheduler struct {
	now        float64
	generation uint64
	nextID     uint64
	pending    []*scheduledTask
}

// NewScheduler 创建调度器
func NewScheduler() *Scheduler {
	return &Scheduler{generation: 1}
}

// Now 返回调度器的当前时间（秒）
func (s *Scheduler) Now() float64 {
	return s.now
}

// Generation 返回当前代数
func (s *Scheduler) Generation() uint64 {
	return s.generation
}

// Pending 返回仍在等待的回调数量
func (s *Scheduler) Pending() int {
	n := 0
	for _, task := range s.pending {
		if !task.cancelled && task.generation == s.generation {
			n++
		}
	}
	return n
}

// After 在 delay 秒后执行 fn。负数或非有限的 delay 视为 0。
func (s *Scheduler) After(delay float64, fn func()) TimerHandle {
	if !(delay >= 0) || math.IsInf(delay, 0) {
		delay = 0
	}
	s.nextID++
	task := &scheduledTask{
		id:         s.nextID,
		generation: s.generation,
		due:        s.now + delay,
		fn:         fn,
	}
	// pending 按 (due, id) 有序；id 递增，同一到期时间插在已有任务之后
	i := sort.Search(len(s.pending), func(i int) bool {
		return s.pending[i].due > task.due
	})
	s.pending = append(s.pending, nil)
	copy(s.pending[i+1:], s.pending[i:])
	s.pending[i] = task
	return TimerHandle{id: task.id, generation: task.generation}
}

// Cancel 取消一个回调。已执行、已取消或属于旧代数的句柄忽略。
func (s *Scheduler) Cancel(h TimerHandle) {
	if h.generation != s.generation {
		return
	}
	for _, task := range s.pending {
		if task.id == h.id {
			task.cancelled = true
			return
		}
	}
}

// Update 推进 dt 秒并执行所有到期回调
func (s *Scheduler) Update(dt float64) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		dt = 0
	}
	target := s.now + dt
	gen := s.generation

	for {
		task := s.popDue(target)
		if task == nil {
			break
		}
		if task.cancelled || task.generation != s.generation {
			continue
		}
		s.now = math.Max(s.now, task.due)
		task.fn()
		if s.generation != gen {
			// 回调中发生了 Teardown，停止本帧剩余工作
			return
		}
	}
	s.now = target
}

// popDue 取出最早到期（到期时间相同时按调度顺序）的回调
func (s *Scheduler) popDue(target float64) *scheduledTask {
	if len(s.pending) == 0 {
		return nil
	}
	head := s.pending[0]
	if head.due > target {
		return nil
	}
	s.pending = s.pending[1:]
	return head
}

// Teardown 使所有未执行的回调失效
func (s *Scheduler) Teardown() {
	s.generation++
	s.pending = nil
}
