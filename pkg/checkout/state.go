package checkout

// State 一次结账尝试的状态。Succeeded和Failed是终态：
// 已确认或已失败的意向不会被再次确认，新的尝试需要全新的Idle开始
type State string

const (
	StateIdle         State = "idle"
	StateInitializing State = "initializing"
	StateReady        State = "ready"
	StateConfirming   State = "confirming"
	StatePersisting   State = "persisting"
	StateSucceeded    State = "succeeded"
	StateFailed       State = "failed"
)

// Terminal 判断是否为终态
func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// PhaseListener 相变监听器，在每次状态切换时同步调用
type PhaseListener func(from, to State)
