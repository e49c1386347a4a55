package view

import "sync"

// Presenter receives fully computed view models. Implementations must be
// safe for concurrent use.
type Presenter interface {
	RenderDashboard(model DashboardModel)
	RenderTransactions(model TransactionsModel)
	RenderCategories(model CategoriesModel)
	RenderBudgets(model BudgetsModel)
	Notify(notification Notification)
}

// SnapshotPresenter keeps the latest model of every view and queues
// notifications until they are drained.
type SnapshotPresenter struct {
	mu            sync.Mutex
	dashboard     *DashboardModel
	transactions  *TransactionsModel
	categories    *CategoriesModel
	budgets       *BudgetsModel
	notifications []Notification
	renders       map[View]int
}

func NewSnapshotPresenter() *SnapshotPresenter {
	return &SnapshotPresenter{renders: map[View]int{}}
}

func (p *SnapshotPresenter) RenderDashboard(model DashboardModel) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dashboard = &model
	p.renders[Dashboard]++
}

func (p *SnapshotPresenter) RenderTransactions(model TransactionsModel) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.transactions = &model
	p.renders[Transactions]++
}

func (p *SnapshotPresenter) RenderCategories(model CategoriesModel) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.categories = &model
	p.renders[Categories]++
}

func (p *SnapshotPresenter) RenderBudgets(model BudgetsModel) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.budgets = &model
	p.renders[Budgets]++
}

func (p *SnapshotPresenter) Notify(notification Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notifications = append(p.notifications, notification)
}

// Drain returns and forgets every queued notification.
func (p *SnapshotPresenter) Drain() []Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	drained := p.notifications
	p.notifications = nil
	if drained == nil {
		drained = []Notification{}
	}
	return drained
}

func (p *SnapshotPresenter) Dashboard() (DashboardModel, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.dashboard == nil {
		return DashboardModel{}, false
	}
	return *p.dashboard, true
}

func (p *SnapshotPresenter) Transactions() (TransactionsModel, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.transactions == nil {
		return TransactionsModel{}, false
	}
	return *p.transactions, true
}

func (p *SnapshotPresenter) Categories() (CategoriesModel, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.categories == nil {
		return CategoriesModel{}, false
	}
	return *p.categories, true
}

func (p *SnapshotPresenter) Budgets() (BudgetsModel, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.budgets == nil {
		return BudgetsModel{}, false
	}
	return *p.budgets, true
}

// RenderCount reports how often a view was rendered.
func (p *SnapshotPresenter) RenderCount(v View) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.renders[v]
}
