package todo

// Todo は ToDoタスクを表します。
// JSONタグ: クライアントとの通信用 ({id, task, completed} のみを公開)
type Todo struct {
	// ID: ストアが作成時に採番する不透明な識別子
	ID string `json:"id"`

	// Task: タスクの内容（必須・作成後は変更不可）
	Task string `json:"task"`

	// Completed: 完了状態 (false -> true の一方向のみ)
	Completed bool `json:"completed"`
}
